package constant

// Attribute keys for structured logging.
const (
	Error    = "error"
	UserID   = "user_id"
	RoomID   = "room_id"
	UserName = "username"
	Email    = "email"
)

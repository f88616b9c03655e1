package input

import "github.com/google/uuid"

type SendMessageInput struct {
	RoomID uuid.UUID `json:"room_id"`
	Sender string    `json:"sender"`
	Body   string    `json:"body"`
}

package input

type CreateRoomInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
}

// UpdateRoomInput merges only the fields that are set. Nil means "keep".
type UpdateRoomInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
}

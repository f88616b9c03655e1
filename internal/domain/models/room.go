package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/qrave1/meetspace/internal/domain/input"
)

type Room struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Capacity    int       `json:"capacity" db:"capacity"`
	Active      bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Participants are loaded from room_participants, not a rooms column.
	// Capacity is advisory: joins are never rejected on a full room.
	Participants []string `json:"participants" db:"-"`
}

func NewRoom(in *input.CreateRoomInput) *Room {
	return &Room{
		ID:           uuid.New(),
		Name:         in.Name,
		Description:  in.Description,
		Capacity:     in.Capacity,
		Active:       true,
		CreatedAt:    time.Now(),
		Participants: []string{},
	}
}

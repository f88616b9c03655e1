package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/qrave1/meetspace/internal/domain/models"
)

type CreateRoomRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" validate:"required,gt=0"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gt=0"`
}

type RoomResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Capacity     int       `json:"capacity"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	Participants []string  `json:"participants"`
}

func NewRoomResponseFromModel(room *models.Room) RoomResponse {
	return RoomResponse{
		ID:           room.ID,
		Name:         room.Name,
		Description:  room.Description,
		Capacity:     room.Capacity,
		Active:       room.Active,
		CreatedAt:    room.CreatedAt,
		Participants: room.Participants,
	}
}

type ListRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

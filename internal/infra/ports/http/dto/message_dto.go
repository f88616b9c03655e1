package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/qrave1/meetspace/internal/domain/models"
)

// Sender is an email by current convention, but the core treats it as an
// opaque string, so no format validation here.
type SendMessageRequest struct {
	Sender string `json:"sender" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

type MessageResponse struct {
	ID        int64     `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessageResponseFromModel(msg *models.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		Sender:    msg.Sender,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}
}

type ListMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}

package events

import (
	"encoding/json"

	"github.com/qrave1/meetspace/internal/domain/models"
)

// Message is the envelope for every inbound websocket event.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// JoinEvent subscribes the connection to a room.
type JoinEvent struct {
	RoomID string `json:"room_id"`
}

// LeaveEvent removes one room subscription without closing the connection.
type LeaveEvent struct {
	RoomID string `json:"room_id"`
}

// ChatMessageEvent is pushed to every subscriber of a room right after the
// message is persisted.
type ChatMessageEvent struct {
	Type    string          `json:"type"`
	Message *models.Message `json:"message"`
}

func NewChatMessageEvent(msg *models.Message) ChatMessageEvent {
	return ChatMessageEvent{
		Type:    "message",
		Message: msg,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once appended. RoomID is a loose reference: messages
// survive the deletion of their room and are only reachable by room id.
type Message struct {
	ID        int64     `json:"id" db:"id"`
	RoomID    uuid.UUID `json:"room_id" db:"room_id"`
	Sender    string    `json:"sender" db:"sender"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qrave1/meetspace/internal/domain/models"
)

type MessageRepository interface {
	// Append never checks that the room exists: rooms and messages are
	// loosely coupled and history survives room deletion.
	Append(ctx context.Context, roomID uuid.UUID, sender, body string) (*models.Message, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Message, error)
}

type messageRepo struct {
	db *sqlx.DB
}

func NewMessageRepo(db *sqlx.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Append(ctx context.Context, roomID uuid.UUID, sender, body string) (*models.Message, error) {
	msg := models.Message{
		RoomID:    roomID,
		Sender:    sender,
		Body:      body,
		CreatedAt: time.Now(),
	}

	err := r.db.GetContext(
		ctx,
		&msg.ID,
		"INSERT INTO messages (room_id, sender, body, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
		msg.RoomID,
		msg.Sender,
		msg.Body,
		msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	return &msg, nil
}

func (r *messageRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Message, error) {
	messages := []*models.Message{}

	// Secondary sort on id keeps insertion order for equal timestamps.
	err := r.db.SelectContext(
		ctx,
		&messages,
		"SELECT * FROM messages WHERE room_id = $1 ORDER BY created_at, id",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}

	return messages, nil
}

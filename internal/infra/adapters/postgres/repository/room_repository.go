package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/qrave1/meetspace/internal/domain/apperrors"
	"github.com/qrave1/meetspace/internal/domain/input"
	"github.com/qrave1/meetspace/internal/domain/models"
)

const pgForeignKeyViolation = "23503"

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	List(ctx context.Context) ([]*models.Room, error)
	Update(ctx context.Context, id uuid.UUID, update *input.UpdateRoomInput) (*models.Room, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AddParticipant is an atomic set-add: concurrent joins serialize in the
	// database and re-adding a participant is a no-op.
	AddParticipant(ctx context.Context, roomID uuid.UUID, participant string) error
}

type roomRepo struct {
	db *sqlx.DB
}

func NewRoomRepo(db *sqlx.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *models.Room) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO rooms (id, name, description, capacity, is_active, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		room.ID,
		room.Name,
		room.Description,
		room.Capacity,
		room.Active,
		room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert room: %w", err)
	}

	return nil
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room

	err := r.db.GetContext(ctx, &room, "SELECT * FROM rooms WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select room: %w", err)
	}

	if err := r.loadParticipants(ctx, &room); err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *roomRepo) List(ctx context.Context) ([]*models.Room, error) {
	var rooms []*models.Room

	err := r.db.SelectContext(ctx, &rooms, "SELECT * FROM rooms ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("select rooms: %w", err)
	}

	for _, room := range rooms {
		if err := r.loadParticipants(ctx, room); err != nil {
			return nil, err
		}
	}

	return rooms, nil
}

func (r *roomRepo) Update(ctx context.Context, id uuid.UUID, update *input.UpdateRoomInput) (*models.Room, error) {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE rooms
		 SET name = COALESCE($1, name),
		     description = COALESCE($2, description),
		     capacity = COALESCE($3, capacity)
		 WHERE id = $4`,
		update.Name,
		update.Description,
		update.Capacity,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}

	if aff, err := res.RowsAffected(); err == nil && aff == 0 {
		return nil, apperrors.ErrRoomNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *roomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	if aff, err := res.RowsAffected(); err == nil && aff == 0 {
		return apperrors.ErrRoomNotFound
	}

	return nil
}

func (r *roomRepo) AddParticipant(ctx context.Context, roomID uuid.UUID, participant string) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO room_participants (room_id, participant) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		roomID,
		participant,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return apperrors.ErrRoomNotFound
		}

		return fmt.Errorf("add participant: %w", err)
	}

	return nil
}

func (r *roomRepo) loadParticipants(ctx context.Context, room *models.Room) error {
	participants := []string{}

	err := r.db.SelectContext(
		ctx,
		&participants,
		"SELECT participant FROM room_participants WHERE room_id = $1 ORDER BY joined_at",
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("select participants: %w", err)
	}

	room.Participants = participants

	return nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/qrave1/meetspace/internal/domain/apperrors"
	"github.com/qrave1/meetspace/internal/domain/events"
	"github.com/qrave1/meetspace/internal/domain/input"
	"github.com/qrave1/meetspace/internal/domain/models"
	"github.com/qrave1/meetspace/internal/infra/adapters/memory"
	"github.com/qrave1/meetspace/internal/infra/adapters/postgres/repository"
)

type RoomUsecase interface {
	CreateRoom(ctx context.Context, in *input.CreateRoomInput) (*models.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListRooms(ctx context.Context) ([]*models.Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, update *input.UpdateRoomInput) (*models.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error

	JoinRoom(ctx context.Context, roomID uuid.UUID, userID string) (*models.Room, error)

	SendMessage(ctx context.Context, roomID uuid.UUID, sender, body string) (*models.Message, error)
	GetMessages(ctx context.Context, roomID uuid.UUID) ([]*models.Message, error)
}

type roomUsecase struct {
	roomRepo    repository.RoomRepository
	messageRepo repository.MessageRepository
	broadcaster memory.Broadcaster
}

func NewRoomUsecase(
	roomRepo repository.RoomRepository,
	messageRepo repository.MessageRepository,
	broadcaster memory.Broadcaster,
) RoomUsecase {
	return &roomUsecase{
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		broadcaster: broadcaster,
	}
}

func (uc *roomUsecase) CreateRoom(ctx context.Context, in *input.CreateRoomInput) (*models.Room, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.NewValidation("name", "is required")
	}

	if in.Capacity <= 0 {
		return nil, apperrors.NewValidation("capacity", "must be positive")
	}

	room := models.NewRoom(in)

	if err := uc.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	return room, nil
}

func (uc *roomUsecase) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return uc.roomRepo.GetByID(ctx, id)
}

func (uc *roomUsecase) ListRooms(ctx context.Context) ([]*models.Room, error) {
	return uc.roomRepo.List(ctx)
}

func (uc *roomUsecase) UpdateRoom(ctx context.Context, id uuid.UUID, update *input.UpdateRoomInput) (*models.Room, error) {
	return uc.roomRepo.Update(ctx, id, update)
}

func (uc *roomUsecase) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	// Messages of the room are kept on purpose; history stays reachable
	// by room id.
	return uc.roomRepo.Delete(ctx, id)
}

func (uc *roomUsecase) JoinRoom(ctx context.Context, roomID uuid.UUID, userID string) (*models.Room, error) {
	if _, err := uc.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	if err := uc.roomRepo.AddParticipant(ctx, roomID, userID); err != nil {
		return nil, fmt.Errorf("add participant: %w", err)
	}

	return uc.roomRepo.GetByID(ctx, roomID)
}

func (uc *roomUsecase) SendMessage(ctx context.Context, roomID uuid.UUID, sender, body string) (*models.Message, error) {
	if strings.TrimSpace(sender) == "" {
		return nil, apperrors.NewValidation("sender", "is required")
	}

	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidation("body", "is required")
	}

	msg, err := uc.messageRepo.Append(ctx, roomID, sender, body)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	// Fan-out happens after the append succeeded, from the persisted
	// record. Delivery failures are handled inside the broadcaster and
	// never surface to the sender.
	uc.broadcaster.Publish(roomID, events.NewChatMessageEvent(msg))

	return msg, nil
}

func (uc *roomUsecase) GetMessages(ctx context.Context, roomID uuid.UUID) ([]*models.Message, error) {
	return uc.messageRepo.ListByRoom(ctx, roomID)
}

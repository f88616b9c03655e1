package memory

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/qrave1/meetspace/internal/application/constant"
)

// Subscriber is the delivery capability of one live connection. Send must
// not block: implementations queue the payload and report an error only
// when the connection is broken or its queue is full.
type Subscriber interface {
	ID() uuid.UUID
	Send(v any) error
}

type Broadcaster interface {
	Subscribe(sub Subscriber, roomID uuid.UUID)
	Unsubscribe(sub Subscriber, roomID uuid.UUID)
	UnsubscribeAll(sub Subscriber)

	// Publish delivers payload to every subscriber of the room at call
	// time. A failing subscriber is logged and skipped, never the
	// caller's problem: the message is already persisted.
	Publish(roomID uuid.UUID, payload any)
}

type roomSubscribers struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]Subscriber
}

type broadcaster struct {
	// rooms holds map[room_id]subscriber set. The outer lock serializes
	// membership changes; each room carries its own lock so Publish only
	// ever takes read locks.
	rooms map[uuid.UUID]*roomSubscribers

	mu sync.RWMutex
}

func NewBroadcaster() Broadcaster {
	return &broadcaster{
		rooms: make(map[uuid.UUID]*roomSubscribers),
	}
}

func (b *broadcaster) Subscribe(sub Subscriber, roomID uuid.UUID) {
	// The outer lock is held across the add: releasing it first would let
	// an unsubscribe of the room's last member prune the set from rooms
	// while we still hold it, stranding the new subscriber in a set no
	// Publish can reach.
	b.mu.Lock()
	defer b.mu.Unlock()

	rs, ok := b.rooms[roomID]
	if !ok {
		rs = &roomSubscribers{subs: make(map[uuid.UUID]Subscriber)}
		b.rooms[roomID] = rs
	}

	rs.mu.Lock()
	rs.subs[sub.ID()] = sub
	rs.mu.Unlock()
}

func (b *broadcaster) Unsubscribe(sub Subscriber, roomID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rs, ok := b.rooms[roomID]
	if !ok {
		return
	}

	rs.mu.Lock()
	delete(rs.subs, sub.ID())
	empty := len(rs.subs) == 0
	rs.mu.Unlock()

	if empty {
		delete(b.rooms, roomID)
	}
}

func (b *broadcaster) UnsubscribeAll(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for roomID, rs := range b.rooms {
		rs.mu.Lock()
		delete(rs.subs, sub.ID())
		empty := len(rs.subs) == 0
		rs.mu.Unlock()

		if empty {
			delete(b.rooms, roomID)
		}
	}
}

func (b *broadcaster) Publish(roomID uuid.UUID, payload any) {
	b.mu.RLock()
	rs, ok := b.rooms[roomID]
	b.mu.RUnlock()

	if !ok {
		return
	}

	// Snapshot under the room lock, deliver outside it, so a subscriber
	// joining mid-publish never deadlocks and sends never hold the lock.
	rs.mu.RLock()
	snapshot := make([]Subscriber, 0, len(rs.subs))
	for _, sub := range rs.subs {
		snapshot = append(snapshot, sub)
	}
	rs.mu.RUnlock()

	for _, sub := range snapshot {
		if err := sub.Send(payload); err != nil {
			slog.Error(
				"broadcast to subscriber",
				slog.Any(constant.Error, err),
				slog.String(constant.RoomID, roomID.String()),
				slog.String("subscriber_id", sub.ID().String()),
			)
		}
	}
}

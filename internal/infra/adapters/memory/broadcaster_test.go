package memory

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriber struct {
	id uuid.UUID

	mu       sync.Mutex
	received []any
	fail     bool
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{id: uuid.New()}
}

func (f *fakeSubscriber) ID() uuid.UUID {
	return f.id
}

func (f *fakeSubscriber) Send(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("connection broken")
	}

	f.received = append(f.received, v)
	return nil
}

func (f *fakeSubscriber) payloads() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]any{}, f.received...)
}

func TestPublish_DeliversOnlyToRoomSubscribers(t *testing.T) {
	b := NewBroadcaster()

	roomA := uuid.New()
	roomB := uuid.New()

	subA := newFakeSubscriber()
	subB := newFakeSubscriber()

	b.Subscribe(subA, roomA)
	b.Subscribe(subB, roomB)

	b.Publish(roomA, "hello")

	require.Len(t, subA.payloads(), 1)
	assert.Equal(t, "hello", subA.payloads()[0])
	assert.Empty(t, subB.payloads())
}

func TestSubscribe_Idempotent(t *testing.T) {
	b := NewBroadcaster()

	roomID := uuid.New()
	sub := newFakeSubscriber()

	b.Subscribe(sub, roomID)
	b.Subscribe(sub, roomID)

	b.Publish(roomID, "once")

	assert.Len(t, sub.payloads(), 1)
}

func TestSubscriber_MultipleRooms(t *testing.T) {
	b := NewBroadcaster()

	roomA := uuid.New()
	roomB := uuid.New()
	sub := newFakeSubscriber()

	b.Subscribe(sub, roomA)
	b.Subscribe(sub, roomB)

	b.Publish(roomA, "a")
	b.Publish(roomB, "b")

	assert.Equal(t, []any{"a", "b"}, sub.payloads())
}

func TestUnsubscribeAll_RemovesEverySubscription(t *testing.T) {
	b := NewBroadcaster()

	roomA := uuid.New()
	roomB := uuid.New()
	sub := newFakeSubscriber()

	b.Subscribe(sub, roomA)
	b.Subscribe(sub, roomB)

	b.UnsubscribeAll(sub)

	b.Publish(roomA, "a")
	b.Publish(roomB, "b")

	assert.Empty(t, sub.payloads())
}

func TestUnsubscribe_UnknownSubscriberIsNoop(t *testing.T) {
	b := NewBroadcaster()

	sub := newFakeSubscriber()

	b.Unsubscribe(sub, uuid.New())
	b.UnsubscribeAll(sub)
}

func TestPublish_UnknownRoomIsNoop(t *testing.T) {
	b := NewBroadcaster()

	b.Publish(uuid.New(), "nobody home")
}

func TestPublish_FailingSubscriberDoesNotStopOthers(t *testing.T) {
	b := NewBroadcaster()

	roomID := uuid.New()

	broken := newFakeSubscriber()
	broken.fail = true
	healthy := newFakeSubscriber()

	b.Subscribe(broken, roomID)
	b.Subscribe(healthy, roomID)

	b.Publish(roomID, "hello")

	assert.Len(t, healthy.payloads(), 1)
}

func TestPublish_PerSubscriberOrder(t *testing.T) {
	b := NewBroadcaster()

	roomID := uuid.New()
	sub := newFakeSubscriber()
	b.Subscribe(sub, roomID)

	const n = 10
	for i := 0; i < n; i++ {
		b.Publish(roomID, i)
	}

	got := sub.payloads()
	require.Len(t, got, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, i, got[i])
	}
}

func TestSubscribe_SurvivesLastMemberUnsubscribe(t *testing.T) {
	// A subscribe racing the unsubscribe of a room's last member must not
	// land in a subscriber set that was pruned from the room map: after
	// both settle, a publish has to reach the new subscriber.
	for i := 0; i < 500; i++ {
		b := NewBroadcaster()
		roomID := uuid.New()

		last := newFakeSubscriber()
		b.Subscribe(last, roomID)

		fresh := newFakeSubscriber()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			b.UnsubscribeAll(last)
		}()
		go func() {
			defer wg.Done()
			b.Subscribe(fresh, roomID)
		}()
		wg.Wait()

		b.Publish(roomID, "after churn")

		require.Equal(t, []any{"after churn"}, fresh.payloads())
	}
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	b := NewBroadcaster()

	roomID := uuid.New()

	var wg sync.WaitGroup

	subs := make([]*fakeSubscriber, 0, 16)
	for i := 0; i < 16; i++ {
		sub := newFakeSubscriber()
		subs = append(subs, sub)

		wg.Add(1)
		go func(s *fakeSubscriber) {
			defer wg.Done()
			b.Subscribe(s, roomID)
		}(sub)
	}

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.Publish(roomID, fmt.Sprintf("msg %d", i))
		}(i)
	}

	wg.Wait()

	// Every subscriber is registered once the dust settles; a final
	// publish must reach all of them.
	b.Publish(roomID, "final")

	for _, sub := range subs {
		got := sub.payloads()
		require.NotEmpty(t, got)
		assert.Equal(t, "final", got[len(got)-1])
	}
}

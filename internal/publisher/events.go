package publisher

import (
	"context"
	"sync"
	"time"
)

// EventKind labels a publish lifecycle notification.
type EventKind string

const (
	EventSaved     EventKind = "saved"
	EventPublished EventKind = "published"
)

// Event announces a completed save or publish.
type Event struct {
	Kind    EventKind
	Version string
	At      time.Time
}

type publishBroadcaster struct {
	mu       sync.Mutex
	watchers map[uint64]chan Event
	nextID   uint64
}

func newPublishBroadcaster() *publishBroadcaster {
	return &publishBroadcaster{watchers: make(map[uint64]chan Event)}
}

func (b *publishBroadcaster) Subscribe(ctx context.Context) (<-chan Event, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ch := make(chan Event, 8)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.watchers, id)
		close(ch)
		b.mu.Unlock()
	}()

	return ch, nil
}

func (b *publishBroadcaster) Broadcast(evt Event) {
	b.mu.Lock()
	watchers := make([]chan Event, 0, len(b.watchers))
	for _, ch := range b.watchers {
		watchers = append(watchers, ch)
	}
	b.mu.Unlock()

	for _, ch := range watchers {
		select {
		case ch <- evt:
		default:
		}
	}
}

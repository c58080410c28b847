package selection

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-editor/internal/logging"
	"github.com/goliatone/go-editor/pkg/interfaces"
)

// EventKind labels a selection state transition.
type EventKind string

const (
	EventHoverChanged     EventKind = "hover_changed"
	EventSelectionChanged EventKind = "selection_changed"
	EventDisabled         EventKind = "disabled"
	EventEnabled          EventKind = "enabled"
)

// Event reports a transition. ID is the affected node ID; empty when the
// hover or selection was cleared.
type Event struct {
	Kind EventKind
	ID   string
	At   time.Time
}

// Tracker holds the hover and selection state of an editing session. Hover
// and selection are independent: pointing at a node never changes which node
// is selected, only an explicit Select does. A disabled tracker ignores all
// pointer input.
type Tracker struct {
	mu       sync.RWMutex
	enabled  bool
	hovered  string
	selected string

	broadcaster *trackerBroadcaster
	clock       func() time.Time
	logger      interfaces.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) {
		if clock != nil {
			t.clock = clock
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTracker creates a tracker in the enabled state.
func NewTracker(opts ...Option) *Tracker {
	tracker := &Tracker{
		enabled:     true,
		broadcaster: newTrackerBroadcaster(),
		clock:       time.Now,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(tracker)
	}
	return tracker
}

// Enable turns pointer tracking back on.
func (t *Tracker) Enable() {
	t.mu.Lock()
	if t.enabled {
		t.mu.Unlock()
		return
	}
	t.enabled = true
	t.mu.Unlock()

	t.emit(EventEnabled, "")
}

// Disable turns pointer tracking off and clears both hover and selection so
// no stale highlight survives the editing session.
func (t *Tracker) Disable() {
	t.mu.Lock()
	if !t.enabled {
		t.mu.Unlock()
		return
	}
	t.enabled = false
	t.hovered = ""
	t.selected = ""
	t.mu.Unlock()

	t.emit(EventDisabled, "")
}

// Enabled reports whether the tracker accepts pointer input.
func (t *Tracker) Enabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// Hover marks id as hovered. Re-hovering the current target is a no-op.
func (t *Tracker) Hover(id string) bool {
	t.mu.Lock()
	if !t.enabled || id == "" || t.hovered == id {
		t.mu.Unlock()
		return false
	}
	t.hovered = id
	t.mu.Unlock()

	t.emit(EventHoverChanged, id)
	return true
}

// ClearHover drops the hover highlight, leaving any selection intact.
func (t *Tracker) ClearHover() bool {
	t.mu.Lock()
	if t.hovered == "" {
		t.mu.Unlock()
		return false
	}
	t.hovered = ""
	t.mu.Unlock()

	t.emit(EventHoverChanged, "")
	return true
}

// Select marks id as the selected node. Selecting the current node again is
// a no-op; hover state is untouched.
func (t *Tracker) Select(id string) bool {
	t.mu.Lock()
	if !t.enabled || id == "" || t.selected == id {
		t.mu.Unlock()
		return false
	}
	t.selected = id
	t.mu.Unlock()

	t.logger.Debug("node selected", "node_id", id)
	t.emit(EventSelectionChanged, id)
	return true
}

// ClearSelection drops the selection, leaving hover intact.
func (t *Tracker) ClearSelection() bool {
	t.mu.Lock()
	if t.selected == "" {
		t.mu.Unlock()
		return false
	}
	t.selected = ""
	t.mu.Unlock()

	t.emit(EventSelectionChanged, "")
	return true
}

// Hovered returns the hovered node ID, if any.
func (t *Tracker) Hovered() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hovered, t.hovered != ""
}

// Selected returns the selected node ID, if any.
func (t *Tracker) Selected() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selected, t.selected != ""
}

// Subscribe delivers state transitions until ctx is cancelled.
func (t *Tracker) Subscribe(ctx context.Context) (<-chan Event, error) {
	return t.broadcaster.Subscribe(ctx)
}

func (t *Tracker) emit(kind EventKind, id string) {
	t.broadcaster.Broadcast(Event{Kind: kind, ID: id, At: t.clock().UTC()})
}

type trackerBroadcaster struct {
	mu       sync.Mutex
	watchers map[uint64]chan Event
	nextID   uint64
}

func newTrackerBroadcaster() *trackerBroadcaster {
	return &trackerBroadcaster{watchers: make(map[uint64]chan Event)}
}

func (b *trackerBroadcaster) Subscribe(ctx context.Context) (<-chan Event, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ch := make(chan Event, 16)

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

func (b *trackerBroadcaster) Broadcast(evt Event) {
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

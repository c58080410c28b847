package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/goliatone/go-editor/internal/logging"
	snapshotrepo "github.com/goliatone/go-editor/internal/snapshots"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/pkg/interfaces"
	"github.com/goliatone/go-editor/snapshots"
	"github.com/oklog/ulid/v2"
)

// DefaultDebounce is the trailing-edge quiet period before a scheduled save
// is flushed.
const DefaultDebounce = 2 * time.Second

// Source supplies the content to persist. The registry store satisfies it.
type Source interface {
	Content() map[string]nodes.Node
}

// SaveResult reports the outcome of a flush. Skipped means the content was
// byte-identical to the last successful save and no write happened.
type SaveResult struct {
	Version string
	SavedAt time.Time
	Skipped bool
	Err     error
}

// Timer is the resettable handle behind the debounce window.
type Timer interface {
	Stop() bool
}

// TimerFactory builds timers; tests inject a manual implementation.
type TimerFactory func(d time.Duration, fn func()) Timer

func stdTimerFactory(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Manager debounces content saves into the autosave slot. Schedule restarts
// the quiet period on every call, so a burst of edits produces a single write
// after the burst ends.
type Manager struct {
	mu           sync.Mutex
	repo         snapshotrepo.Repository
	source       Source
	slot         snapshots.Slot
	debounce     time.Duration
	clock        func() time.Time
	timerFactory TimerFactory
	version      func(at time.Time) string
	logger       interfaces.Logger

	timer           Timer
	lastFingerprint string
	results         chan SaveResult
	destroyed       bool
	inflight        sync.WaitGroup
}

// Option configures a Manager.
type Option func(*Manager)

func WithDebounce(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.debounce = d
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func WithTimerFactory(factory TimerFactory) Option {
	return func(m *Manager) {
		if factory != nil {
			m.timerFactory = factory
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithVersionFunc(version func(at time.Time) string) Option {
	return func(m *Manager) {
		if version != nil {
			m.version = version
		}
	}
}

func NewManager(repo snapshotrepo.Repository, source Source, opts ...Option) (*Manager, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if source == nil {
		return nil, ErrSourceRequired
	}

	manager := &Manager{
		repo:         repo,
		source:       source,
		slot:         snapshots.SlotAutosave,
		debounce:     DefaultDebounce,
		clock:        time.Now,
		timerFactory: stdTimerFactory,
		logger:       logging.NoOp(),
		results:      make(chan SaveResult, 16),
		version: func(at time.Time) string {
			return ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String()
		},
	}
	for _, opt := range opts {
		opt(manager)
	}
	return manager, nil
}

// Schedule restarts the debounce window. The pending save, if any, is
// replaced rather than stacked.
func (m *Manager) Schedule() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.destroyed {
		return ErrManagerDestroyed
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = m.timerFactory(m.debounce, func() {
		m.flush(context.Background())
	})
	return nil
}

// ForceSave cancels any pending debounce and flushes immediately.
func (m *Manager) ForceSave(ctx context.Context) SaveResult {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return SaveResult{Err: ErrManagerDestroyed}
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()

	return m.flush(ctx)
}

// LoadLastSaved returns the last autosaved snapshot. A missing or unreadable
// snapshot is reported as absent, never as an error: restore paths degrade to
// defaults instead of failing startup.
func (m *Manager) LoadLastSaved(ctx context.Context) (snapshots.Snapshot, bool) {
	stored, err := m.repo.Get(ctx, m.slot)
	if err != nil {
		if !snapshotNotFound(err) {
			m.logger.Warn("discarding unreadable autosave snapshot", "error", err)
		}
		return snapshots.Snapshot{}, false
	}
	m.rememberFingerprint(stored.Content)
	return stored, true
}

// HasPending reports whether a debounced save is currently scheduled.
func (m *Manager) HasPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timer != nil
}

// Results delivers the outcome of each flush. The channel is buffered;
// consumers that fall behind drop the oldest outcomes rather than blocking
// the save path.
func (m *Manager) Results() <-chan SaveResult {
	return m.results
}

// Destroy flushes any pending save and releases the manager. Further
// scheduling fails with ErrManagerDestroyed.
func (m *Manager) Destroy(ctx context.Context) SaveResult {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return SaveResult{Err: ErrManagerDestroyed}
	}
	pending := m.timer != nil
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.destroyed = true
	m.mu.Unlock()

	// A timer that already fired may still be flushing; the results channel
	// must stay open until that flush has emitted.
	m.inflight.Wait()

	result := SaveResult{Skipped: true}
	if pending {
		result = m.persist(ctx)
	}
	close(m.results)
	return result
}

func (m *Manager) flush(ctx context.Context) SaveResult {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return SaveResult{Err: ErrManagerDestroyed}
	}
	m.timer = nil
	m.inflight.Add(1)
	m.mu.Unlock()
	defer m.inflight.Done()

	result := m.persist(ctx)
	m.emit(result)
	return result
}

func (m *Manager) persist(ctx context.Context) SaveResult {
	content := m.source.Content()
	fingerprint, err := Fingerprint(content)
	if err != nil {
		m.logger.Error("computing content fingerprint", "error", err)
		return SaveResult{Err: err}
	}

	m.mu.Lock()
	unchanged := fingerprint == m.lastFingerprint && m.lastFingerprint != ""
	m.mu.Unlock()
	if unchanged {
		return SaveResult{Skipped: true}
	}

	now := m.clock().UTC()
	snapshot := snapshots.Snapshot{
		Content: content,
		SavedAt: now,
		Version: m.version(now),
	}

	if err := m.repo.Put(ctx, m.slot, snapshot); err != nil {
		// The fingerprint stays untouched so the next flush retries the write.
		m.logger.Error("persisting autosave snapshot", "error", err, "version", snapshot.Version)
		return SaveResult{Version: snapshot.Version, SavedAt: now, Err: err}
	}

	m.mu.Lock()
	m.lastFingerprint = fingerprint
	m.mu.Unlock()

	m.logger.Debug("autosave snapshot persisted", "version", snapshot.Version, "nodes", len(content))
	return SaveResult{Version: snapshot.Version, SavedAt: now}
}

func (m *Manager) rememberFingerprint(content map[string]nodes.Node) {
	fingerprint, err := Fingerprint(content)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.lastFingerprint = fingerprint
	m.mu.Unlock()
}

func (m *Manager) emit(result SaveResult) {
	select {
	case m.results <- result:
	default:
	}
}

// Fingerprint returns the canonical JSON form of the content map. Go encodes
// map keys in sorted order, which makes the encoding stable across runs.
func Fingerprint(content map[string]nodes.Node) (string, error) {
	if len(content) == 0 {
		return "{}", nil
	}
	encoded, err := json.Marshal(content)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func snapshotNotFound(err error) bool {
	var notFound *snapshots.NotFoundError
	return errors.As(err, &notFound)
}

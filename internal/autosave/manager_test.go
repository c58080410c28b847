package autosave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	snapshotrepo "github.com/goliatone/go-editor/internal/snapshots"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/schema"
	"github.com/goliatone/go-editor/snapshots"
)

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualTimers records every timer the manager arms and lets the test fire
// the latest one by hand.
type manualTimers struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (m *manualTimers) factory(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	timer := &manualTimer{fn: fn}
	m.timers = append(m.timers, timer)
	return timer
}

func (m *manualTimers) fireLatest(t *testing.T) {
	t.Helper()
	m.mu.Lock()
	if len(m.timers) == 0 {
		m.mu.Unlock()
		t.Fatal("no timer armed")
	}
	timer := m.timers[len(m.timers)-1]
	m.mu.Unlock()

	if timer.stopped {
		t.Fatal("latest timer was stopped")
	}
	timer.fn()
}

func (m *manualTimers) armed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, timer := range m.timers {
		if !timer.stopped {
			count++
		}
	}
	return count
}

type mapSource struct {
	mu      sync.Mutex
	content map[string]nodes.Node
}

func (s *mapSource) Content() map[string]nodes.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]nodes.Node, len(s.content))
	for id, node := range s.content {
		out[id] = node.Clone()
	}
	return out
}

func (s *mapSource) set(id string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content == nil {
		s.content = make(map[string]nodes.Node)
	}
	s.content[id] = nodes.Node{ID: id, Kind: schema.KindText, Value: value}
}

func sequentialVersions() func(time.Time) string {
	counter := 0
	return func(time.Time) string {
		counter++
		return fmt.Sprintf("v%d", counter)
	}
}

func newTestManager(t *testing.T, repo snapshotrepo.Repository, source Source, timers *manualTimers) *Manager {
	t.Helper()
	manager, err := NewManager(repo, source,
		WithTimerFactory(timers.factory),
		WithClock(func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }),
		WithVersionFunc(sequentialVersions()),
	)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager
}

func TestManagerRequiresCollaborators(t *testing.T) {
	if _, err := NewManager(nil, &mapSource{}); err != ErrRepositoryRequired {
		t.Fatalf("expected ErrRepositoryRequired, got %v", err)
	}
	if _, err := NewManager(snapshotrepo.NewMemoryRepository(), nil); err != ErrSourceRequired {
		t.Fatalf("expected ErrSourceRequired, got %v", err)
	}
}

func TestManagerDebounceCollapsesBurst(t *testing.T) {
	repo := snapshotrepo.NewMemoryRepository()
	source := &mapSource{}
	timers := &manualTimers{}
	manager := newTestManager(t, repo, source, timers)

	source.set("hero-title", "A")
	for i := 0; i < 5; i++ {
		if err := manager.Schedule(); err != nil {
			t.Fatalf("schedule %d: %v", i, err)
		}
	}

	// Every reschedule replaces the previous timer; only one stays armed.
	if got := timers.armed(); got != 1 {
		t.Fatalf("expected 1 armed timer, got %d", got)
	}

	timers.fireLatest(t)

	stored, err := repo.Get(context.Background(), snapshots.SlotAutosave)
	if err != nil {
		t.Fatalf("get autosave slot: %v", err)
	}
	if stored.Version != "v1" {
		t.Fatalf("expected a single save with version v1, got %q", stored.Version)
	}
	if stored.Content["hero-title"].Value != "A" {
		t.Fatalf("unexpected saved content: %+v", stored.Content)
	}
}

func TestManagerSkipsUnchangedContent(t *testing.T) {
	repo := snapshotrepo.NewMemoryRepository()
	source := &mapSource{}
	timers := &manualTimers{}
	manager := newTestManager(t, repo, source, timers)

	source.set("hero-title", "A")

	first := manager.ForceSave(context.Background())
	if first.Err != nil {
		t.Fatalf("first save: %v", first.Err)
	}
	if first.Skipped {
		t.Fatal("expected first save to write")
	}

	second := manager.ForceSave(context.Background())
	if second.Err != nil {
		t.Fatalf("second save: %v", second.Err)
	}
	if !second.Skipped {
		t.Fatal("expected identical content to be skipped")
	}

	source.set("hero-title", "B")
	third := manager.ForceSave(context.Background())
	if third.Skipped {
		t.Fatal("expected changed content to be written")
	}
	if third.Version != "v2" {
		t.Fatalf("expected version v2, got %q", third.Version)
	}
}

func TestManagerFailureKeepsFingerprint(t *testing.T) {
	repo := &failingRepository{inner: snapshotrepo.NewMemoryRepository(), failures: 1}
	source := &mapSource{}
	timers := &manualTimers{}
	manager := newTestManager(t, repo, source, timers)

	source.set("hero-title", "A")

	first := manager.ForceSave(context.Background())
	if first.Err == nil {
		t.Fatal("expected first save to fail")
	}

	// The failed write must not be remembered as saved, so the retry writes.
	second := manager.ForceSave(context.Background())
	if second.Err != nil {
		t.Fatalf("retry save: %v", second.Err)
	}
	if second.Skipped {
		t.Fatal("expected retry to write after a failure")
	}
}

func TestManagerLoadLastSaved(t *testing.T) {
	repo := snapshotrepo.NewMemoryRepository()
	source := &mapSource{}
	timers := &manualTimers{}
	manager := newTestManager(t, repo, source, timers)

	if _, ok := manager.LoadLastSaved(context.Background()); ok {
		t.Fatal("expected no snapshot before first save")
	}

	source.set("hero-title", "A")
	if result := manager.ForceSave(context.Background()); result.Err != nil {
		t.Fatalf("save: %v", result.Err)
	}

	restored, ok := manager.LoadLastSaved(context.Background())
	if !ok {
		t.Fatal("expected a restored snapshot")
	}
	if restored.Content["hero-title"].Value != "A" {
		t.Fatalf("unexpected restored content: %+v", restored.Content)
	}

	// Loading primes the fingerprint: saving the same content again skips.
	if result := manager.ForceSave(context.Background()); !result.Skipped {
		t.Fatal("expected save after restore to be skipped")
	}
}

func TestManagerDestroyFlushesPending(t *testing.T) {
	repo := snapshotrepo.NewMemoryRepository()
	source := &mapSource{}
	timers := &manualTimers{}
	manager := newTestManager(t, repo, source, timers)

	source.set("hero-title", "A")
	if err := manager.Schedule(); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	result := manager.Destroy(context.Background())
	if result.Err != nil {
		t.Fatalf("destroy: %v", result.Err)
	}
	if result.Skipped {
		t.Fatal("expected pending edits to be flushed on destroy")
	}

	if _, err := repo.Get(context.Background(), snapshots.SlotAutosave); err != nil {
		t.Fatalf("expected autosave snapshot after destroy, got %v", err)
	}

	if err := manager.Schedule(); err != ErrManagerDestroyed {
		t.Fatalf("expected ErrManagerDestroyed, got %v", err)
	}
}

func TestManagerDestroyWaitsForInflightFlush(t *testing.T) {
	inner := snapshotrepo.NewMemoryRepository()
	repo := &blockingRepository{inner: inner, entered: make(chan struct{}), release: make(chan struct{})}
	source := &mapSource{}
	timers := &manualTimers{}
	manager := newTestManager(t, repo, source, timers)

	source.set("hero-title", "A")
	if err := manager.Schedule(); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	flushed := make(chan SaveResult, 1)
	go func() {
		timers.fireLatest(t)
		flushed <- <-manager.Results()
	}()

	// Wait until the flush is inside the repository write, then tear down
	// while it is still in flight.
	<-repo.entered

	destroyed := make(chan SaveResult, 1)
	go func() {
		destroyed <- manager.Destroy(context.Background())
	}()

	select {
	case <-destroyed:
		t.Fatal("destroy returned while a flush was still writing")
	case <-time.After(50 * time.Millisecond):
	}

	close(repo.release)

	select {
	case result := <-flushed:
		if result.Err != nil {
			t.Fatalf("flush result: %v", result.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected the in-flight flush to complete")
	}

	select {
	case result := <-destroyed:
		if result.Err != nil {
			t.Fatalf("destroy: %v", result.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected destroy to return after the flush")
	}

	if _, err := inner.Get(context.Background(), snapshots.SlotAutosave); err != nil {
		t.Fatalf("expected autosave snapshot after destroy, got %v", err)
	}
}

func TestManagerResultsChannel(t *testing.T) {
	repo := snapshotrepo.NewMemoryRepository()
	source := &mapSource{}
	timers := &manualTimers{}
	manager := newTestManager(t, repo, source, timers)

	source.set("hero-title", "A")
	if err := manager.Schedule(); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	timers.fireLatest(t)

	select {
	case result := <-manager.Results():
		if result.Err != nil {
			t.Fatalf("save result: %v", result.Err)
		}
		if result.Version != "v1" {
			t.Fatalf("expected version v1, got %q", result.Version)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a save result")
	}
}

// blockingRepository parks the first Put until release is closed so tests can
// hold a flush mid-write.
type blockingRepository struct {
	inner   snapshotrepo.Repository
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *blockingRepository) Put(ctx context.Context, slot snapshots.Slot, snapshot snapshots.Snapshot) error {
	r.once.Do(func() {
		close(r.entered)
		<-r.release
	})
	return r.inner.Put(ctx, slot, snapshot)
}

func (r *blockingRepository) Get(ctx context.Context, slot snapshots.Slot) (snapshots.Snapshot, error) {
	return r.inner.Get(ctx, slot)
}

func (r *blockingRepository) Delete(ctx context.Context, slot snapshots.Slot) error {
	return r.inner.Delete(ctx, slot)
}

type failingRepository struct {
	inner    snapshotrepo.Repository
	failures int
}

func (r *failingRepository) Put(ctx context.Context, slot snapshots.Slot, snapshot snapshots.Snapshot) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("storage quota exceeded")
	}
	return r.inner.Put(ctx, slot, snapshot)
}

func (r *failingRepository) Get(ctx context.Context, slot snapshots.Slot) (snapshots.Snapshot, error) {
	return r.inner.Get(ctx, slot)
}

func (r *failingRepository) Delete(ctx context.Context, slot snapshots.Slot) error {
	return r.inner.Delete(ctx, slot)
}

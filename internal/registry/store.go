package registry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-editor/internal/logging"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/pkg/interfaces"
)

// Loader produces previously persisted content, typically the last autosaved
// snapshot. A NotFoundError from the loader is not an error condition for
// Load; it simply means there is nothing to restore.
type Loader interface {
	LoadContent(ctx context.Context) (map[string]nodes.Node, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (map[string]nodes.Node, error)

func (f LoaderFunc) LoadContent(ctx context.Context) (map[string]nodes.Node, error) {
	return f(ctx)
}

// Store is the in-memory registry of editable content nodes. All accessors
// return defensive copies; mutations notify subscribers without blocking.
type Store struct {
	mu          sync.RWMutex
	nodes       map[string]nodes.Node
	arena       *Arena
	broadcaster *changeBroadcaster
	logger      interfaces.Logger
	clock       func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

func WithLogger(logger interfaces.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	store := &Store{
		nodes:       make(map[string]nodes.Node),
		broadcaster: newChangeBroadcaster(),
		logger:      logging.NoOp(),
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	store.arena = NewArena(store.clock)
	return store
}

// Register inserts a node, or merges the definition into an existing entry
// with the same ID. Merging keeps the current value unless the incoming node
// carries a non-nil one. A metadata parent annotation must reference an
// already registered node.
func (s *Store) Register(node nodes.Node) error {
	if node.ID == "" {
		return ErrNodeIDRequired
	}
	if !node.Kind.Valid() {
		return ErrNodeKindInvalid
	}

	s.mu.Lock()
	if parent, ok := node.Parent(); ok {
		if _, exists := s.nodes[parent]; !exists {
			s.mu.Unlock()
			return ErrParentUnknown
		}
	}
	existing, ok := s.nodes[node.ID]
	if ok {
		merged := existing
		merged.Kind = node.Kind
		if node.Label != "" {
			merged.Label = node.Label
		}
		if node.Value != nil {
			merged.Value = nodes.CloneValue(node.Value)
		}
		if node.Style != nil {
			merged.Style = cloneStyle(node.Style)
		}
		if node.Metadata != nil {
			merged.Metadata = cloneMetadata(node.Metadata)
		}
		s.nodes[node.ID] = merged
	} else {
		s.nodes[node.ID] = node.Clone()
	}
	s.mu.Unlock()

	s.broadcaster.Broadcast(ChangeEvent{
		Kind: ChangeRegistered,
		Path: node.ID,
		At:   s.clock().UTC(),
	})
	return nil
}

// Update applies a patch to a registered node and reports whether anything
// was stored. Updating an unknown ID is a no-op, not an error.
func (s *Store) Update(id string, patch nodes.Patch) bool {
	s.mu.Lock()
	existing, ok := s.nodes[id]
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("update ignored for unregistered node", "node_id", id)
		return false
	}

	if patch.Label != nil {
		existing.Label = *patch.Label
	}
	if patch.Kind != nil && patch.Kind.Valid() {
		existing.Kind = *patch.Kind
	}
	if patch.SetValue {
		existing.Value = nodes.CloneValue(patch.Value)
	}
	if patch.Style != nil {
		if existing.Style == nil {
			existing.Style = make(map[string]string, len(patch.Style))
		}
		for k, v := range patch.Style {
			existing.Style[k] = v
		}
	}
	if patch.Metadata != nil {
		if existing.Metadata == nil {
			existing.Metadata = make(map[string]any, len(patch.Metadata))
		}
		for k, v := range patch.Metadata {
			existing.Metadata[k] = v
		}
	}
	s.nodes[id] = existing
	s.mu.Unlock()

	s.broadcaster.Broadcast(ChangeEvent{
		Kind: ChangeUpdated,
		Path: id,
		At:   s.clock().UTC(),
	})
	return true
}

// Get returns a copy of the node with the given ID.
func (s *Store) Get(id string) (nodes.Node, error) {
	s.mu.RLock()
	node, ok := s.nodes[id]
	s.mu.RUnlock()

	if !ok {
		return nodes.Node{}, &NotFoundError{ID: id}
	}
	return node.Clone(), nil
}

// All returns copies of every registered node, sorted by ID for stable
// iteration.
func (s *Store) All() []nodes.Node {
	s.mu.RLock()
	out := make([]nodes.Node, 0, len(s.nodes))
	for _, node := range s.nodes {
		out = append(out, node.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Content returns the full node map keyed by ID, cloned.
func (s *Store) Content() map[string]nodes.Node {
	s.mu.RLock()
	out := make(map[string]nodes.Node, len(s.nodes))
	for id, node := range s.nodes {
		out[id] = node.Clone()
	}
	s.mu.RUnlock()
	return out
}

// Replace swaps the entire content set in one step and emits a single
// replaced event.
func (s *Store) Replace(content map[string]nodes.Node) {
	next := make(map[string]nodes.Node, len(content))
	for id, node := range content {
		if id == "" {
			continue
		}
		clone := node.Clone()
		clone.ID = id
		next[id] = clone
	}

	s.mu.Lock()
	s.nodes = next
	s.mu.Unlock()

	s.broadcaster.Broadcast(ChangeEvent{
		Kind: ChangeReplaced,
		At:   s.clock().UTC(),
	})
}

// Subscribe registers a change watcher bound to ctx. The channel closes when
// the context is cancelled. Slow consumers drop events instead of blocking
// mutations.
func (s *Store) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return s.broadcaster.Subscribe(ctx)
}

// Arena exposes the stable array-item identity allocator backing this store.
func (s *Store) Arena() *Arena {
	return s.arena
}

// Load restores content from the loader, falling back to defaults when the
// loader has nothing or returns corrupt data. Load never fails: a broken
// persistence layer degrades to the default content set with a warning.
func (s *Store) Load(ctx context.Context, loader Loader, defaults map[string]nodes.Node) {
	if loader != nil {
		content, err := loader.LoadContent(ctx)
		if err == nil && len(content) > 0 {
			s.Replace(content)
			return
		}
		if err != nil {
			s.logger.Warn("restoring default content after load failure", "error", err)
		}
	}
	s.Replace(defaults)
}

func cloneStyle(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneMetadata(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

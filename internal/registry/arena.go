package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/goliatone/go-editor/contentpath"
	"github.com/goliatone/go-editor/internal/identity"
	"github.com/goliatone/go-editor/nodes"
)

// Arena assigns stable identifiers to array items. An item keeps its identity
// across reorders and sibling removals; only the positional path changes.
type Arena struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*nodes.Item
	seqs  map[string]uint64
	clock func() time.Time
}

func NewArena(clock func() time.Time) *Arena {
	if clock == nil {
		clock = time.Now
	}
	return &Arena{
		items: make(map[uuid.UUID]*nodes.Item),
		seqs:  make(map[string]uint64),
		clock: clock,
	}
}

// Allocate mints a stable item under arrayPath at the given position. The
// identity derives from a creation ordinal, never from the position, so
// reordering siblings does not mint a new ID.
func (a *Arena) Allocate(arrayPath string, position int) (nodes.Item, error) {
	if arrayPath == "" {
		return nodes.Item{}, ErrArrayPathMissing
	}
	if position < 0 {
		return nodes.Item{}, ErrPositionInvalid
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	seq := a.seqs[arrayPath]
	a.seqs[arrayPath] = seq + 1

	item := nodes.Item{
		ID:        identity.ItemUUID(arrayPath, seq),
		ArrayPath: arrayPath,
		Position:  position,
		CreatedAt: a.clock().UTC(),
	}

	a.shiftLocked(arrayPath, position, 1)
	stored := item
	a.items[item.ID] = &stored
	return item, nil
}

// PathFor returns the positional content path of an item, e.g. "features[2]".
func (a *Arena) PathFor(id uuid.UUID) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	item, ok := a.items[id]
	if !ok {
		return "", false
	}
	return contentpath.Item(item.ArrayPath, item.Position), true
}

// Move repositions an item among its siblings. The item ID is unchanged.
func (a *Arena) Move(id uuid.UUID, position int) error {
	if position < 0 {
		return ErrPositionInvalid
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	item, ok := a.items[id]
	if !ok {
		return ErrItemUnknown
	}
	if item.Position == position {
		return nil
	}

	from := item.Position
	if position > from {
		for _, sibling := range a.items {
			if sibling.ArrayPath != item.ArrayPath || sibling.ID == id {
				continue
			}
			if sibling.Position > from && sibling.Position <= position {
				sibling.Position--
			}
		}
	} else {
		for _, sibling := range a.items {
			if sibling.ArrayPath != item.ArrayPath || sibling.ID == id {
				continue
			}
			if sibling.Position >= position && sibling.Position < from {
				sibling.Position++
			}
		}
	}
	item.Position = position
	return nil
}

// Remove drops an item and closes the positional gap for its siblings.
func (a *Arena) Remove(id uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	item, ok := a.items[id]
	if !ok {
		return ErrItemUnknown
	}
	delete(a.items, id)
	a.shiftLocked(item.ArrayPath, item.Position, -1)
	return nil
}

// Items returns the items under arrayPath ordered by position.
func (a *Arena) Items(arrayPath string) []nodes.Item {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]nodes.Item, 0)
	for _, item := range a.items {
		if item.ArrayPath == arrayPath {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (a *Arena) shiftLocked(arrayPath string, from, delta int) {
	for _, item := range a.items {
		if item.ArrayPath == arrayPath && item.Position >= from {
			item.Position += delta
		}
	}
}

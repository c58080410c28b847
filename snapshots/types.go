package snapshots

import (
	"fmt"
	"time"

	"github.com/goliatone/go-editor/nodes"
)

// Slot names a durable snapshot location. Slots are fixed: autosave holds the
// debounced working copy, draft the last explicit save, published the copy
// served to end users.
type Slot string

const (
	SlotAutosave  Slot = "autosave"
	SlotDraft     Slot = "draft"
	SlotPublished Slot = "published"
)

// Valid reports whether the slot is one of the declared locations.
func (s Slot) Valid() bool {
	switch s {
	case SlotAutosave, SlotDraft, SlotPublished:
		return true
	default:
		return false
	}
}

// Snapshot is a full serialized copy of the content store plus bookkeeping.
// Version is a locally unique token (ULID: timestamp + random suffix), not a
// cryptographic identity.
type Snapshot struct {
	Content map[string]nodes.Node `json:"content"`
	SavedAt time.Time             `json:"timestamp"`
	Version string                `json:"version"`
}

// Clone returns a deep copy so callers can mutate content freely.
func (s Snapshot) Clone() Snapshot {
	copied := s
	if s.Content != nil {
		copied.Content = make(map[string]nodes.Node, len(s.Content))
		for id, node := range s.Content {
			copied.Content[id] = node.Clone()
		}
	}
	return copied
}

// NotFoundError is returned when a slot holds no snapshot.
type NotFoundError struct {
	Slot Slot
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("snapshot slot %q not found", string(e.Slot))
}

package nodes

import (
	"maps"
	"time"

	"github.com/goliatone/go-editor/schema"
	"github.com/google/uuid"
)

// Metadata keys interpreted by the selection layer and editor panel. The
// registry stores metadata opaquely and only validates MetaParent linkage.
const (
	MetaParent     = "parent"
	MetaPriority   = "priority"
	MetaVisibility = "visibility"
)

// Node is the unit of editable content, addressed by a stable content path.
type Node struct {
	ID       string            `json:"id"`
	Kind     schema.FieldKind  `json:"kind"`
	Label    string            `json:"label,omitempty"`
	Value    any               `json:"value,omitempty"`
	Style    map[string]string `json:"style_attributes,omitempty"`
	Metadata map[string]any    `json:"metadata,omitempty"`
}

// Parent returns the parent path annotation when present.
func (n Node) Parent() (string, bool) {
	raw, ok := n.Metadata[MetaParent]
	if !ok {
		return "", false
	}
	parent, ok := raw.(string)
	return parent, ok && parent != ""
}

// Clone returns a deep copy of the node's maps; Value is copied when it is a
// decoded JSON tree (maps/slices), otherwise shared (scalars are immutable).
func (n Node) Clone() Node {
	copied := n
	if n.Style != nil {
		copied.Style = maps.Clone(n.Style)
	}
	if n.Metadata != nil {
		copied.Metadata = cloneValueMap(n.Metadata)
	}
	copied.Value = CloneValue(n.Value)
	return copied
}

// CloneValue deep-copies decoded JSON values (maps and slices); scalars are
// returned as-is.
func CloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneValueMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return value
	}
}

func cloneValueMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = CloneValue(value)
	}
	return out
}

// Patch carries a partial node update. Nil pointer fields leave the existing
// value untouched; Style and Metadata merge key-wise.
type Patch struct {
	Label    *string
	Kind     *schema.FieldKind
	Value    any
	SetValue bool
	Style    map[string]string
	Metadata map[string]any
}

// Item pairs a stable identifier with an array position. The identifier is
// assigned once at creation and survives reorders; the position is derived.
type Item struct {
	ID        uuid.UUID `json:"id"`
	ArrayPath string    `json:"array_path"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

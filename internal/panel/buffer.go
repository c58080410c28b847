package panel

import (
	"reflect"
	"sync"

	"github.com/goliatone/go-editor/nodes"
)

// Buffer holds uncommitted edits for one node. The store is untouched until
// Apply; Reset discards everything and reloads the stored value.
type Buffer struct {
	mu      sync.Mutex
	service *Service
	nodeID  string
	base    nodes.Node

	value    any
	valueSet bool
	style    map[string]string
	closed   bool
}

func newBuffer(service *Service, node nodes.Node) *Buffer {
	return &Buffer{
		service: service,
		nodeID:  node.ID,
		base:    node,
		value:   node.Value,
	}
}

// NodeID returns the node this buffer edits.
func (b *Buffer) NodeID() string {
	return b.nodeID
}

// Value returns the working value, staged or stored.
func (b *Buffer) Value() any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Set stages a new value.
func (b *Buffer) Set(value any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBufferClosed
	}
	b.value = value
	b.valueSet = true
	return nil
}

// SetStyle stages a style attribute.
func (b *Buffer) SetStyle(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBufferClosed
	}
	if b.style == nil {
		b.style = make(map[string]string)
	}
	b.style[key] = value
	return nil
}

// Dirty reports whether the buffer differs from the stored node.
func (b *Buffer) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.style) > 0 {
		return true
	}
	return b.valueSet && !reflect.DeepEqual(b.value, b.base.Value)
}

// Validate runs the declared field rules against the staged value.
func (b *Buffer) Validate() []string {
	b.mu.Lock()
	value := b.value
	b.mu.Unlock()
	return b.service.Validate(b.nodeID, value)
}

// Apply writes the staged edits to the store as a single update and closes
// the buffer. Applying a clean buffer is a no-op.
func (b *Buffer) Apply() (bool, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return false, ErrBufferClosed
	}

	patch := nodes.Patch{}
	dirty := false
	if b.valueSet && !reflect.DeepEqual(b.value, b.base.Value) {
		patch.Value = b.value
		patch.SetValue = true
		dirty = true
	}
	if len(b.style) > 0 {
		patch.Style = b.style
		dirty = true
	}
	b.closed = true
	b.mu.Unlock()

	if !dirty {
		return false, nil
	}
	if !b.service.store.Update(b.nodeID, patch) {
		return false, ErrNoOpenNode
	}
	return true, nil
}

// Reset discards staged edits and reopens the buffer on the stored value.
func (b *Buffer) Reset() error {
	node, err := b.service.store.Get(b.nodeID)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.base = node
	b.value = node.Value
	b.valueSet = false
	b.style = nil
	b.closed = false
	return nil
}

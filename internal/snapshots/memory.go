package snapshots

import (
	"context"
	"sync"

	"github.com/goliatone/go-editor/snapshots"
)

// MemoryRepository keeps snapshots in process memory. It backs tests and
// deployments that do not need persistence across restarts.
type MemoryRepository struct {
	mu    sync.RWMutex
	slots map[snapshots.Slot]snapshots.Snapshot
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		slots: make(map[snapshots.Slot]snapshots.Snapshot),
	}
}

func (r *MemoryRepository) Put(ctx context.Context, slot snapshots.Slot, snapshot snapshots.Snapshot) error {
	if !slot.Valid() {
		return ErrSlotInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[slot] = snapshot.Clone()
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, slot snapshots.Slot) (snapshots.Snapshot, error) {
	if !slot.Valid() {
		return snapshots.Snapshot{}, ErrSlotInvalid
	}

	r.mu.RLock()
	stored, ok := r.slots[slot]
	r.mu.RUnlock()

	if !ok {
		return snapshots.Snapshot{}, &snapshots.NotFoundError{Slot: slot}
	}
	return stored.Clone(), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, slot snapshots.Slot) error {
	if !slot.Valid() {
		return ErrSlotInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[slot]; !ok {
		return &snapshots.NotFoundError{Slot: slot}
	}
	delete(r.slots, slot)
	return nil
}

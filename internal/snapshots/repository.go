package snapshots

import (
	"context"

	"github.com/goliatone/go-editor/snapshots"
)

// Repository persists one snapshot per storage slot. Put overwrites the
// slot's previous snapshot; Get returns snapshots.NotFoundError when the slot
// has never been written.
type Repository interface {
	Put(ctx context.Context, slot snapshots.Slot, snapshot snapshots.Snapshot) error
	Get(ctx context.Context, slot snapshots.Slot) (snapshots.Snapshot, error)
	Delete(ctx context.Context, slot snapshots.Slot) error
}

package snapshots

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-editor/internal/identity"
	"github.com/goliatone/go-editor/snapshots"
	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewRecordRepository creates the generic repository for snapshot rows.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(record *Record) uuid.UUID {
			return record.ID
		},
		SetID: func(record *Record, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "slot"
		},
		GetIdentifierValue: func(record *Record) string {
			return record.Slot
		},
	})
}

// BunRepository persists slot snapshots using a Bun-backed database, with
// optional read caching.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Record]
}

// NewBunRepository creates a snapshot repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a snapshot repository with caching
// support. Cached reads serve the published slot on hot paths.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	var base repository.Repository[*Record]
	if db != nil {
		base = NewRecordRepository(db)
		if cacheService != nil && serializer != nil {
			base = repositorycache.New(base, cacheService, serializer)
		}
	}
	return &BunRepository{db: db, repo: base}
}

func (r *BunRepository) Put(ctx context.Context, slot snapshots.Slot, snapshot snapshots.Snapshot) error {
	if r.db == nil {
		return ErrDatabaseMissing
	}
	if !slot.Valid() {
		return ErrSlotInvalid
	}

	record, err := recordFromSnapshot(slot, snapshot)
	if err != nil {
		return err
	}
	record.ID = identity.SnapshotUUID(string(slot))
	record.UpdatedAt = time.Now().UTC()

	_, err = r.repo.GetByID(ctx, record.ID.String())
	if err != nil {
		if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			if _, err := r.repo.Create(ctx, record); err != nil {
				return mapRepositoryError(err, slot)
			}
			return nil
		}
		return mapRepositoryError(err, slot)
	}

	if _, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("content", "version", "saved_at", "updated_at"),
	); err != nil {
		return mapRepositoryError(err, slot)
	}
	return nil
}

func (r *BunRepository) Get(ctx context.Context, slot snapshots.Slot) (snapshots.Snapshot, error) {
	if r.db == nil {
		return snapshots.Snapshot{}, ErrDatabaseMissing
	}
	if !slot.Valid() {
		return snapshots.Snapshot{}, ErrSlotInvalid
	}

	record, err := r.repo.GetByIdentifier(ctx, string(slot))
	if err != nil {
		return snapshots.Snapshot{}, mapRepositoryError(err, slot)
	}
	return recordToSnapshot(record)
}

func (r *BunRepository) Delete(ctx context.Context, slot snapshots.Slot) error {
	if r.db == nil {
		return ErrDatabaseMissing
	}
	if !slot.Valid() {
		return ErrSlotInvalid
	}

	record, err := r.repo.GetByIdentifier(ctx, string(slot))
	if err != nil {
		return mapRepositoryError(err, slot)
	}
	return r.repo.Delete(ctx, record)
}

func mapRepositoryError(err error, slot snapshots.Slot) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &snapshots.NotFoundError{Slot: slot}
	}
	return fmt.Errorf("snapshot repository error: %w", err)
}

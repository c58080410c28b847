package snapshots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/schema"
	"github.com/goliatone/go-editor/snapshots"
)

func sampleSnapshot(version string) snapshots.Snapshot {
	return snapshots.Snapshot{
		Content: map[string]nodes.Node{
			"hero-title": {ID: "hero-title", Kind: schema.KindText, Value: "Welcome"},
		},
		SavedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Version: version,
	}
}

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Put(ctx, snapshots.SlotAutosave, sampleSnapshot("v1")); err != nil {
		t.Fatalf("put snapshot: %v", err)
	}

	stored, err := repo.Get(ctx, snapshots.SlotAutosave)
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if stored.Version != "v1" {
		t.Fatalf("expected version v1, got %q", stored.Version)
	}
	if stored.Content["hero-title"].Value != "Welcome" {
		t.Fatalf("unexpected content: %+v", stored.Content)
	}
}

func TestMemoryRepositorySlotsAreIndependent(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Put(ctx, snapshots.SlotDraft, sampleSnapshot("draft-1")); err != nil {
		t.Fatalf("put draft: %v", err)
	}

	if _, err := repo.Get(ctx, snapshots.SlotPublished); err == nil {
		t.Fatal("expected published slot to be empty")
	} else {
		var notFound *snapshots.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if notFound.Slot != snapshots.SlotPublished {
			t.Fatalf("expected published slot in error, got %q", notFound.Slot)
		}
	}
}

func TestMemoryRepositoryRejectsUnknownSlot(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Put(ctx, snapshots.Slot("scratch"), sampleSnapshot("v1")); err != ErrSlotInvalid {
		t.Fatalf("expected ErrSlotInvalid, got %v", err)
	}
	if _, err := repo.Get(ctx, snapshots.Slot("scratch")); err != ErrSlotInvalid {
		t.Fatalf("expected ErrSlotInvalid, got %v", err)
	}
}

func TestMemoryRepositoryIsolatesStoredContent(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	snapshot := sampleSnapshot("v1")
	if err := repo.Put(ctx, snapshots.SlotAutosave, snapshot); err != nil {
		t.Fatalf("put snapshot: %v", err)
	}

	node := snapshot.Content["hero-title"]
	node.Value = "mutated"
	snapshot.Content["hero-title"] = node

	stored, err := repo.Get(ctx, snapshots.SlotAutosave)
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if stored.Content["hero-title"].Value != "Welcome" {
		t.Fatal("expected stored snapshot to be isolated from caller mutation")
	}
}

func TestMemoryRepositoryDelete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Put(ctx, snapshots.SlotAutosave, sampleSnapshot("v1")); err != nil {
		t.Fatalf("put snapshot: %v", err)
	}
	if err := repo.Delete(ctx, snapshots.SlotAutosave); err != nil {
		t.Fatalf("delete snapshot: %v", err)
	}
	if _, err := repo.Get(ctx, snapshots.SlotAutosave); err == nil {
		t.Fatal("expected slot to be empty after delete")
	}
	if err := repo.Delete(ctx, snapshots.SlotAutosave); err == nil {
		t.Fatal("expected delete of empty slot to fail")
	}
}

package snapshots

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/snapshots"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is the durable form of a slot snapshot. Content is the JSON-encoded
// node map; one row exists per slot, addressed by a deterministic UUID so
// writes are idempotent upserts.
type Record struct {
	bun.BaseModel `bun:"table:editor_snapshots,alias:es"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Slot      string    `bun:"slot,notnull" json:"slot"`
	Content   []byte    `bun:"content,notnull" json:"content"`
	Version   string    `bun:"version,notnull" json:"version"`
	SavedAt   time.Time `bun:"saved_at,nullzero,default:current_timestamp" json:"saved_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func recordFromSnapshot(slot snapshots.Slot, snapshot snapshots.Snapshot) (*Record, error) {
	payload, err := json.Marshal(snapshot.Content)
	if err != nil {
		return nil, fmt.Errorf("snapshots: encode %s content: %w", slot, err)
	}
	return &Record{
		Slot:    string(slot),
		Content: payload,
		Version: snapshot.Version,
		SavedAt: snapshot.SavedAt,
	}, nil
}

func recordToSnapshot(record *Record) (snapshots.Snapshot, error) {
	if record == nil {
		return snapshots.Snapshot{}, nil
	}
	content := make(map[string]nodes.Node)
	if len(record.Content) > 0 {
		if err := json.Unmarshal(record.Content, &content); err != nil {
			return snapshots.Snapshot{}, fmt.Errorf("snapshots: decode %s content: %w", record.Slot, err)
		}
	}
	return snapshots.Snapshot{
		Content: content,
		SavedAt: record.SavedAt,
		Version: record.Version,
	}, nil
}

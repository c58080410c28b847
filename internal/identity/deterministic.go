package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SnapshotUUID derives the record identity for a snapshot slot.
func SnapshotUUID(slot string) uuid.UUID {
	return UUID("go-editor:snapshot:" + strings.ToLower(strings.TrimSpace(slot)))
}

// NodeUUID derives a stable identity for a seeded content node.
func NodeUUID(path string) uuid.UUID {
	return UUID("go-editor:node:" + strings.TrimSpace(path))
}

// ItemUUID derives the stable identity for an array item. The sequence number
// is the item's creation ordinal within its array, never its current position,
// so reorders do not change the identity.
func ItemUUID(arrayPath string, sequence uint64) uuid.UUID {
	return UUID("go-editor:item:" + strings.TrimSpace(arrayPath) + ":" + strconv.FormatUint(sequence, 10))
}

// SectionUUID derives the identity for a registered section schema.
func SectionUUID(name string) uuid.UUID {
	return UUID("go-editor:section:" + strings.ToLower(strings.TrimSpace(name)))
}

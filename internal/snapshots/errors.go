package snapshots

import "errors"

var (
	ErrSlotInvalid     = errors.New("snapshots: slot is not a known storage slot")
	ErrDatabaseMissing = errors.New("snapshots: bun repository requires a database")
)

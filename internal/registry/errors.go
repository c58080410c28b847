package registry

import (
	"errors"
	"fmt"
)

var (
	ErrNodeIDRequired   = errors.New("registry: node id is required")
	ErrNodeKindInvalid  = errors.New("registry: node kind is invalid")
	ErrParentUnknown    = errors.New("registry: metadata parent references an unknown node")
	ErrItemUnknown      = errors.New("registry: array item not found")
	ErrPositionInvalid  = errors.New("registry: array position out of range")
	ErrArrayPathMissing = errors.New("registry: array path is required")
)

// NotFoundError is returned when a node cannot be located by id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content node %q not found", e.ID)
}

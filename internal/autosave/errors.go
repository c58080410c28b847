package autosave

import "errors"

var (
	ErrRepositoryRequired = errors.New("autosave: repository is required")
	ErrSourceRequired     = errors.New("autosave: content source is required")
	ErrManagerDestroyed   = errors.New("autosave: manager has been destroyed")
)

package publisher

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrRepositoryRequired = errors.New("publisher: repository is required")
	ErrSourceRequired     = errors.New("publisher: content source is required")
	ErrNothingToPublish   = errors.New("publisher: no draft content to publish")
)

// ValidationError reports the fields that block publication, keyed by content
// path.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "publish blocked by validation"
	}
	paths := make([]string, 0, len(e.Fields))
	for path := range e.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return fmt.Sprintf("publish blocked by validation: %s", strings.Join(paths, ", "))
}

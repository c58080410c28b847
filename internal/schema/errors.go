package schema

import "errors"

var (
	ErrSectionNameRequired = errors.New("schema: section name is required")
	ErrFieldNameRequired   = errors.New("schema: field name is required")
	ErrFieldKindInvalid    = errors.New("schema: field kind is invalid")
	ErrDefinitionInvalid   = errors.New("schema: section definition is invalid")
	ErrSectionUnknown      = errors.New("schema: section is not registered")
)

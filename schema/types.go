package schema

import (
	"fmt"
	"strings"
)

// FieldKind enumerates the editable value shapes supported by the editor.
// Handlers switch over the kind exhaustively; adding a kind is a
// compile-visible change rather than a stringly-typed branch.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindRichText FieldKind = "richtext"
	KindNumber   FieldKind = "number"
	KindBoolean  FieldKind = "boolean"
	KindURL      FieldKind = "url"
	KindEmail    FieldKind = "email"
	KindSelect   FieldKind = "select"
	KindImage    FieldKind = "image"
	KindArray    FieldKind = "array"
	KindSection  FieldKind = "section"
)

// Kinds returns every supported field kind in declaration order.
func Kinds() []FieldKind {
	return []FieldKind{
		KindText,
		KindRichText,
		KindNumber,
		KindBoolean,
		KindURL,
		KindEmail,
		KindSelect,
		KindImage,
		KindArray,
		KindSection,
	}
}

// Valid reports whether the kind is one of the declared variants.
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindRichText, KindNumber, KindBoolean, KindURL,
		KindEmail, KindSelect, KindImage, KindArray, KindSection:
		return true
	default:
		return false
	}
}

// ParseFieldKind resolves a kind from its string form.
func ParseFieldKind(value string) (FieldKind, error) {
	kind := FieldKind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.Valid() {
		return "", fmt.Errorf("schema: unknown field kind %q", value)
	}
	return kind, nil
}

// Predicate is a caller-supplied validation rule. A non-nil return value is
// surfaced as a validation message alongside the declared rules.
type Predicate func(value any) error

// Rules declares the constraints evaluated for a field. Zero values mean the
// rule is not enforced.
type Rules struct {
	MinLength int       `json:"min_length,omitempty"`
	MaxLength int       `json:"max_length,omitempty"`
	Pattern   string    `json:"pattern,omitempty"`
	Min       *float64  `json:"min,omitempty"`
	Max       *float64  `json:"max,omitempty"`
	Custom    Predicate `json:"-"`
}

// Option describes a single choice for select and image fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// Field declares a single editable field within a section.
type Field struct {
	Name     string    `json:"name"`
	Kind     FieldKind `json:"kind"`
	Label    string    `json:"label,omitempty"`
	Required bool      `json:"required,omitempty"`
	Rules    *Rules    `json:"validation,omitempty"`
	Options  []Option  `json:"options,omitempty"`
	Default  any       `json:"default_value,omitempty"`
}

// Section groups the fields for one content section (hero, pricing, faq...).
type Section struct {
	Name        string  `json:"name"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// FieldByName returns the declared field with the given name.
func (s Section) FieldByName(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	publicschema "github.com/goliatone/go-editor/schema"
)

// ValidateDefinition checks a section definition for structural problems and
// ensures its normalized JSON schema compiles. Malformed definitions are
// rejected at registration time rather than surfacing as runtime validation
// noise.
func ValidateDefinition(section publicschema.Section) error {
	if strings.TrimSpace(section.Name) == "" {
		return ErrSectionNameRequired
	}

	seen := make(map[string]struct{}, len(section.Fields))
	for _, field := range section.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("%w: section %q", ErrFieldNameRequired, section.Name)
		}
		if !field.Kind.Valid() {
			return fmt.Errorf("%w: field %q has kind %q", ErrFieldKindInvalid, name, field.Kind)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate field %q in section %q", ErrDefinitionInvalid, name, section.Name)
		}
		seen[name] = struct{}{}
	}

	if _, err := compileSchema(NormalizeSection(section)); err != nil {
		return fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}
	return nil
}

// NormalizeSection converts a section definition into a JSON schema document.
func NormalizeSection(section publicschema.Section) map[string]any {
	properties := make(map[string]any, len(section.Fields))
	required := make([]string, 0)
	for _, field := range section.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		properties[name] = map[string]any{"type": kindJSONType(field.Kind)}
		if field.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	normalized := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": true,
	}
	if len(required) > 0 {
		normalized["required"] = required
	}
	return normalized
}

// kindJSONType maps each field kind to its JSON schema type. The switch is
// exhaustive; an unknown kind falls back to the permissive empty type at the
// compile step via "null"-free handling in ValidateDefinition.
func kindJSONType(kind publicschema.FieldKind) string {
	switch kind {
	case publicschema.KindText, publicschema.KindRichText, publicschema.KindURL,
		publicschema.KindEmail, publicschema.KindSelect, publicschema.KindImage:
		return "string"
	case publicschema.KindNumber:
		return "number"
	case publicschema.KindBoolean:
		return "boolean"
	case publicschema.KindArray:
		return "array"
	case publicschema.KindSection:
		return "object"
	default:
		return "string"
	}
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// Registry holds the section definitions registered for an editing session.
type Registry struct {
	mu       sync.RWMutex
	sections map[string]publicschema.Section
}

// NewRegistry creates an empty section schema registry.
func NewRegistry() *Registry {
	return &Registry{sections: make(map[string]publicschema.Section)}
}

// Register validates and stores a section definition, replacing any previous
// definition with the same name.
func (r *Registry) Register(section publicschema.Section) error {
	if err := ValidateDefinition(section); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sections[section.Name] = section
	return nil
}

// Section returns the definition registered under name.
func (r *Registry) Section(name string) (publicschema.Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	section, ok := r.sections[name]
	if !ok {
		return publicschema.Section{}, fmt.Errorf("%w: %q", ErrSectionUnknown, name)
	}
	return section, nil
}

// Sections returns every registered definition sorted by name.
func (r *Registry) Sections() []publicschema.Section {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]publicschema.Section, 0, len(r.sections))
	for _, section := range r.sections {
		out = append(out, section)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FieldFor resolves the declared field for a section-qualified content path
// ("hero.title" resolves the "title" field of the "hero" section).
func (r *Registry) FieldFor(sectionName, fieldName string) (publicschema.Field, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	section, ok := r.sections[sectionName]
	if !ok {
		return publicschema.Field{}, false
	}
	return section.FieldByName(fieldName)
}

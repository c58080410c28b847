package schema

import (
	"errors"
	"testing"

	publicschema "github.com/goliatone/go-editor/schema"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewRegistry()
	section := publicschema.Section{
		Name:  "hero",
		Title: "Hero",
		Fields: []publicschema.Field{
			{Name: "title", Kind: publicschema.KindText, Required: true},
			{Name: "cta_url", Kind: publicschema.KindURL},
		},
	}

	if err := registry.Register(section); err != nil {
		t.Fatalf("register: %v", err)
	}

	stored, err := registry.Section("hero")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(stored.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(stored.Fields))
	}

	field, ok := registry.FieldFor("hero", "cta_url")
	if !ok || field.Kind != publicschema.KindURL {
		t.Fatalf("unexpected field lookup result %+v (ok=%v)", field, ok)
	}
}

func TestRegistryRejectsInvalidDefinitions(t *testing.T) {
	registry := NewRegistry()

	cases := []struct {
		name    string
		section publicschema.Section
		want    error
	}{
		{
			name:    "missing section name",
			section: publicschema.Section{Fields: []publicschema.Field{{Name: "a", Kind: publicschema.KindText}}},
			want:    ErrSectionNameRequired,
		},
		{
			name:    "missing field name",
			section: publicschema.Section{Name: "hero", Fields: []publicschema.Field{{Kind: publicschema.KindText}}},
			want:    ErrFieldNameRequired,
		},
		{
			name:    "invalid kind",
			section: publicschema.Section{Name: "hero", Fields: []publicschema.Field{{Name: "a", Kind: "blob"}}},
			want:    ErrFieldKindInvalid,
		},
		{
			name: "duplicate field",
			section: publicschema.Section{Name: "hero", Fields: []publicschema.Field{
				{Name: "a", Kind: publicschema.KindText},
				{Name: "a", Kind: publicschema.KindText},
			}},
			want: ErrDefinitionInvalid,
		},
	}

	for _, tc := range cases {
		if err := registry.Register(tc.section); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestRegistryUnknownSection(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Section("missing"); !errors.Is(err, ErrSectionUnknown) {
		t.Fatalf("expected ErrSectionUnknown, got %v", err)
	}
}

func TestNormalizeSectionProducesJSONSchema(t *testing.T) {
	section := publicschema.Section{
		Name: "pricing",
		Fields: []publicschema.Field{
			{Name: "headline", Kind: publicschema.KindText, Required: true},
			{Name: "seats", Kind: publicschema.KindNumber},
			{Name: "plans", Kind: publicschema.KindArray},
		},
	}

	normalized := NormalizeSection(section)
	properties, ok := normalized["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected properties map, got %T", normalized["properties"])
	}
	if got := properties["seats"].(map[string]any)["type"]; got != "number" {
		t.Fatalf("expected number type, got %v", got)
	}
	if got := properties["plans"].(map[string]any)["type"]; got != "array" {
		t.Fatalf("expected array type, got %v", got)
	}
	required, ok := normalized["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "headline" {
		t.Fatalf("unexpected required list %v", normalized["required"])
	}
}

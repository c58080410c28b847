package schema

import (
	"errors"
	"strings"
	"testing"

	publicschema "github.com/goliatone/go-editor/schema"
)

func TestValidateFieldRequiredShortCircuits(t *testing.T) {
	field := publicschema.Field{
		Name:     "title",
		Kind:     publicschema.KindText,
		Required: true,
		Rules:    &publicschema.Rules{MinLength: 10, Pattern: "^[A-Z]"},
	}

	for _, value := range []any{nil, "", "   ", "\t\n"} {
		errs := ValidateField(value, field)
		if len(errs) != 1 {
			t.Fatalf("value %q: expected exactly one error, got %v", value, errs)
		}
		if errs[0] != requiredMessage {
			t.Fatalf("value %q: expected required message, got %q", value, errs[0])
		}
	}
}

func TestValidateFieldOptionalEmptySkipsAllRules(t *testing.T) {
	field := publicschema.Field{
		Name:  "tagline",
		Kind:  publicschema.KindEmail,
		Rules: &publicschema.Rules{MinLength: 5, Pattern: "@example\\.com$"},
	}

	for _, value := range []any{nil, "", "  "} {
		if errs := ValidateField(value, field); len(errs) != 0 {
			t.Fatalf("value %q: expected no errors, got %v", value, errs)
		}
	}
}

func TestValidateFieldAccumulatesAllFailures(t *testing.T) {
	field := publicschema.Field{
		Name: "heading",
		Kind: publicschema.KindText,
		Rules: &publicschema.Rules{
			MinLength: 10,
			Pattern:   "^[A-Z]",
		},
	}

	errs := ValidateField("abc", field)
	if len(errs) != 2 {
		t.Fatalf("expected 2 accumulated errors, got %v", errs)
	}
}

func TestValidateFieldEmailFormat(t *testing.T) {
	field := publicschema.Field{Name: "contact", Kind: publicschema.KindEmail}

	if errs := ValidateField("team@example.com", field); len(errs) != 0 {
		t.Fatalf("valid email rejected: %v", errs)
	}
	for _, bad := range []string{"no-at-sign", "user@", "@domain.tld"} {
		if errs := ValidateField(bad, field); len(errs) == 0 {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestValidateFieldShapeMismatch(t *testing.T) {
	cases := []struct {
		kind  publicschema.FieldKind
		value any
	}{
		{publicschema.KindText, 42},
		{publicschema.KindNumber, "12"},
		{publicschema.KindBoolean, "true"},
		{publicschema.KindArray, map[string]any{}},
		{publicschema.KindSection, []any{}},
	}
	for _, tc := range cases {
		errs := ValidateField(tc.value, publicschema.Field{Name: "f", Kind: tc.kind})
		if len(errs) == 0 {
			t.Fatalf("kind %s: expected shape error for %T", tc.kind, tc.value)
		}
	}

	// Empty containers of the right shape are fine; only blank strings and
	// nil count as absent.
	if errs := ValidateField([]any{}, publicschema.Field{Name: "f", Kind: publicschema.KindArray}); len(errs) != 0 {
		t.Fatalf("empty list rejected: %v", errs)
	}
	if errs := ValidateField(map[string]any{}, publicschema.Field{Name: "f", Kind: publicschema.KindSection}); len(errs) != 0 {
		t.Fatalf("empty object rejected: %v", errs)
	}
}

func TestValidateFieldNumericBounds(t *testing.T) {
	min, max := 1.0, 10.0
	field := publicschema.Field{
		Name:  "seats",
		Kind:  publicschema.KindNumber,
		Rules: &publicschema.Rules{Min: &min, Max: &max},
	}

	if errs := ValidateField(5, field); len(errs) != 0 {
		t.Fatalf("in-range value rejected: %v", errs)
	}
	if errs := ValidateField(0, field); len(errs) != 1 {
		t.Fatalf("expected single bound error, got %v", errs)
	}
	if errs := ValidateField(11.5, field); len(errs) != 1 {
		t.Fatalf("expected single bound error, got %v", errs)
	}
}

func TestValidateFieldSelectOptions(t *testing.T) {
	field := publicschema.Field{
		Name: "icon",
		Kind: publicschema.KindSelect,
		Options: []publicschema.Option{
			{Value: "zap"}, {Value: "heart"}, {Value: "shield"},
		},
	}

	if errs := ValidateField("heart", field); len(errs) != 0 {
		t.Fatalf("declared option rejected: %v", errs)
	}
	if errs := ValidateField("rocket", field); len(errs) == 0 {
		t.Fatalf("undeclared option accepted")
	}
}

func TestValidateFieldCustomPredicate(t *testing.T) {
	field := publicschema.Field{
		Name: "slug",
		Kind: publicschema.KindText,
		Rules: &publicschema.Rules{
			Custom: func(value any) error {
				if strings.Contains(value.(string), " ") {
					return errors.New("must not contain spaces")
				}
				return nil
			},
		},
	}

	if errs := ValidateField("two words", field); len(errs) != 1 || errs[0] != "must not contain spaces" {
		t.Fatalf("unexpected custom predicate result: %v", errs)
	}
	if errs := ValidateField("one-word", field); len(errs) != 0 {
		t.Fatalf("custom predicate false positive: %v", errs)
	}
}

func TestValidateSectionOnlyFailingFieldsAppear(t *testing.T) {
	section := publicschema.Section{
		Name: "hero",
		Fields: []publicschema.Field{
			{Name: "title", Kind: publicschema.KindText, Required: true},
			{Name: "subtitle", Kind: publicschema.KindText},
			{Name: "cta_url", Kind: publicschema.KindURL},
		},
	}

	result := ValidateSection(map[string]any{
		"title":    "",
		"subtitle": "fine",
		"cta_url":  "not a url at all",
	}, section)

	if len(result) != 2 {
		t.Fatalf("expected 2 failing fields, got %v", result)
	}
	if _, ok := result["subtitle"]; ok {
		t.Fatalf("passing field should not appear in result")
	}
	if len(result["title"]) != 1 {
		t.Fatalf("expected single required error for title, got %v", result["title"])
	}
}

func TestValidateSectionCleanResultIsNil(t *testing.T) {
	section := publicschema.Section{
		Name:   "about",
		Fields: []publicschema.Field{{Name: "body", Kind: publicschema.KindText}},
	}
	if result := ValidateSection(map[string]any{"body": "hello"}, section); result != nil {
		t.Fatalf("expected nil result, got %v", result)
	}
}

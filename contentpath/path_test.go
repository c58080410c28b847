package contentpath

import (
	"errors"
	"testing"
)

func TestParseComposedPath(t *testing.T) {
	segments, err := Parse("features[2].benefits[0]")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(segments) != 4 {
		t.Fatalf("expected 4 segments, got %d (%v)", len(segments), segments)
	}
	if segments[0].Key != "features" || segments[0].IsIndex {
		t.Fatalf("unexpected first segment %+v", segments[0])
	}
	if !segments[1].IsIndex || segments[1].Index != 2 {
		t.Fatalf("unexpected index segment %+v", segments[1])
	}
	if segments[2].Key != "benefits" {
		t.Fatalf("unexpected key segment %+v", segments[2])
	}
	if !segments[3].IsIndex || segments[3].Index != 0 {
		t.Fatalf("unexpected index segment %+v", segments[3])
	}
}

func TestParseRejectsMalformedPaths(t *testing.T) {
	cases := []string{
		"",
		"hero..title",
		".hero",
		"hero.",
		"features[",
		"features[x]",
		"features[-1]",
		"[2].title",
	}
	for _, path := range cases {
		if _, err := Parse(path); err == nil {
			t.Fatalf("expected error for %q", path)
		}
	}
	if _, err := Parse(""); !errors.Is(err, ErrPathRequired) {
		t.Fatalf("expected ErrPathRequired, got %v", err)
	}
}

func TestResolveWalksNestedObjects(t *testing.T) {
	root := map[string]any{
		"hero": map[string]any{
			"mainHeading": map[string]any{"line1": "A"},
		},
	}

	value, ok := Resolve(root, "hero.mainHeading.line1")
	if !ok {
		t.Fatalf("expected path to resolve")
	}
	if value != "A" {
		t.Fatalf("expected %q got %v", "A", value)
	}
}

func TestResolveMissingSegmentReturnsEmpty(t *testing.T) {
	root := map[string]any{
		"hero": map[string]any{"mainHeading": map[string]any{"line1": "A"}},
	}

	value, ok := Resolve(root, "hero.missing.field")
	if ok || value != nil {
		t.Fatalf("expected empty resolution, got %v (ok=%v)", value, ok)
	}
}

func TestResolveArrayIndices(t *testing.T) {
	root := map[string]any{
		"features": []any{
			map[string]any{"title": "first"},
			map[string]any{"title": "second", "benefits": []any{"fast"}},
		},
	}

	value, ok := Resolve(root, "features[1].benefits[0]")
	if !ok || value != "fast" {
		t.Fatalf("expected %q got %v (ok=%v)", "fast", value, ok)
	}
	if _, ok := Resolve(root, "features[5].title"); ok {
		t.Fatalf("out of range index should not resolve")
	}
}

func TestChildAndItemComposition(t *testing.T) {
	if got := Child("hero", "subtitle"); got != "hero.subtitle" {
		t.Fatalf("unexpected child path %q", got)
	}
	if got := Child("", "hero"); got != "hero" {
		t.Fatalf("unexpected root child path %q", got)
	}
	if got := Item("features", 2); got != "features[2]" {
		t.Fatalf("unexpected item path %q", got)
	}
	if got := Item(Child("features[2]", "benefits"), 0); got != "features[2].benefits[0]" {
		t.Fatalf("unexpected composed path %q", got)
	}
}

func TestParentOf(t *testing.T) {
	if got := ParentOf("hero.mainHeading.line1"); got != "hero.mainHeading" {
		t.Fatalf("unexpected parent %q", got)
	}
	if got := ParentOf("features[2]"); got != "features" {
		t.Fatalf("unexpected parent %q", got)
	}
	if got := ParentOf("hero"); got != "" {
		t.Fatalf("expected empty parent, got %q", got)
	}
}

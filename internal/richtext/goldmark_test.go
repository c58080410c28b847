package richtext

import (
	"strings"
	"testing"

	"github.com/goliatone/go-editor/pkg/interfaces"
)

func TestRenderBasicMarkup(t *testing.T) {
	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{})

	out, err := renderer.Render([]byte("# Pricing\n\nChoose a **plan**."))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Pricing") {
		t.Fatalf("expected heading, got %q", html)
	}
	if !strings.Contains(html, "<strong>plan</strong>") {
		t.Fatalf("expected bold text, got %q", html)
	}
}

func TestRenderSafeModeStripsRawHTML(t *testing.T) {
	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{})

	out, err := renderer.RenderWithOptions([]byte("hello <script>alert(1)</script>"), interfaces.RenderOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("expected raw HTML to be suppressed, got %q", string(out))
	}
}

func TestRenderGFMStrikethrough(t *testing.T) {
	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{})

	out, err := renderer.Render([]byte("~~old price~~"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "<del>old price</del>") {
		t.Fatalf("expected strikethrough, got %q", string(out))
	}
}

func TestRenderHardWraps(t *testing.T) {
	renderer := NewGoldmarkRenderer(interfaces.RenderOptions{HardWraps: true})

	out, err := renderer.Render([]byte("line one\nline two"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "<br") {
		t.Fatalf("expected hard wrap, got %q", string(out))
	}
}

package seed

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-editor/contentpath"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/schema"
	"github.com/goliatone/go-slug"
)

// Document is a markdown file parsed into seedable content. The frontmatter
// fields become text nodes under the section; the body becomes the section's
// rich text node.
type Document struct {
	Section string
	Title   string
	Fields  map[string]any
	Body    []byte
	Date    time.Time
}

type documentEnvelope struct {
	Section string         `yaml:"section"`
	Title   string         `yaml:"title"`
	Date    time.Time      `yaml:"date"`
	Custom  map[string]any `yaml:",inline"`
}

// ParseDocument reads a markdown source with YAML frontmatter. The section
// name comes from the frontmatter "section" key, falling back to a slug of
// the title.
func ParseDocument(source []byte) (*Document, error) {
	var envelope documentEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &envelope)
	if err != nil {
		return nil, fmt.Errorf("seed: parse frontmatter: %w", err)
	}

	section := strings.TrimSpace(envelope.Section)
	if section == "" && envelope.Title != "" {
		if normalized, err := slug.Normalize(envelope.Title); err == nil {
			section = normalized
		}
	}
	if section == "" {
		return nil, fmt.Errorf("seed: document has no section or title")
	}

	fields := make(map[string]any, len(envelope.Custom))
	for key, value := range envelope.Custom {
		fields[key] = value
	}

	return &Document{
		Section: section,
		Title:   envelope.Title,
		Fields:  fields,
		Body:    body,
		Date:    envelope.Date,
	}, nil
}

// Nodes flattens the document into content nodes addressed under its
// section. Scalar frontmatter values map to kinds by inspection; the body,
// when present, lands at "<section>.body" as rich text.
func (d *Document) Nodes() map[string]nodes.Node {
	out := make(map[string]nodes.Node, len(d.Fields)+2)

	if d.Title != "" {
		path := contentpath.Child(d.Section, "title")
		out[path] = nodes.Node{ID: path, Kind: schema.KindText, Value: d.Title}
	}
	for key, value := range d.Fields {
		path := contentpath.Child(d.Section, key)
		out[path] = nodes.Node{ID: path, Kind: kindForValue(key, value), Value: value}
	}
	if body := strings.TrimSpace(string(d.Body)); body != "" {
		path := contentpath.Child(d.Section, "body")
		out[path] = nodes.Node{ID: path, Kind: schema.KindRichText, Value: body}
	}
	return out
}

func kindForValue(key string, value any) schema.FieldKind {
	switch typed := value.(type) {
	case bool:
		return schema.KindBoolean
	case int, int64, float64:
		return schema.KindNumber
	case []any:
		return schema.KindArray
	case map[string]any:
		return schema.KindSection
	case string:
		lowered := strings.ToLower(key)
		switch {
		case strings.HasSuffix(lowered, "email"):
			return schema.KindEmail
		case strings.HasSuffix(lowered, "url"), strings.HasSuffix(lowered, "link"):
			return schema.KindURL
		case strings.HasPrefix(typed, "http://"), strings.HasPrefix(typed, "https://"):
			return schema.KindURL
		default:
			return schema.KindText
		}
	default:
		return schema.KindText
	}
}

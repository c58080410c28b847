package panel

import (
	"strings"

	"github.com/goliatone/go-editor/schema"
)

// Control names the input widget the panel renders for a value.
type Control string

const (
	ControlInput    Control = "input"
	ControlTextarea Control = "textarea"
	ControlRichText Control = "richtext"
	ControlNumber   Control = "number"
	ControlToggle   Control = "toggle"
	ControlSelect   Control = "select"
	ControlURL      Control = "url"
	ControlEmail    Control = "email"
	ControlImage    Control = "image"
	ControlIcon     Control = "icon"
	ControlColor    Control = "color"
	ControlGradient Control = "gradient"
	ControlList     Control = "list"
	ControlGroup    Control = "group"
)

// longTextThreshold is the string length past which a plain text value gets a
// textarea instead of a single-line input.
const longTextThreshold = 80

// InferControl picks the widget for a value. The declared field kind decides
// first; for plain text the path and value refine the choice (color swatches,
// gradients, icons, multi-line copy).
func InferControl(path string, kind schema.FieldKind, value any) Control {
	switch kind {
	case schema.KindRichText:
		return ControlRichText
	case schema.KindNumber:
		return ControlNumber
	case schema.KindBoolean:
		return ControlToggle
	case schema.KindSelect:
		return ControlSelect
	case schema.KindURL:
		return ControlURL
	case schema.KindEmail:
		return ControlEmail
	case schema.KindImage:
		return ControlImage
	case schema.KindArray:
		return ControlList
	case schema.KindSection:
		return ControlGroup
	case schema.KindText:
		return inferTextControl(path, value)
	default:
		return ControlInput
	}
}

func inferTextControl(path string, value any) Control {
	key := strings.ToLower(lastSegment(path))

	switch {
	case strings.HasSuffix(key, "gradient"):
		return ControlGradient
	case strings.HasSuffix(key, "color"), strings.HasSuffix(key, "colour"):
		return ControlColor
	case strings.HasSuffix(key, "icon"):
		return ControlIcon
	}

	text, ok := value.(string)
	if !ok {
		return ControlInput
	}

	switch {
	case looksLikeGradient(text):
		return ControlGradient
	case looksLikeColor(text):
		return ControlColor
	case looksLikeImage(key, text):
		return ControlImage
	case strings.Contains(text, "\n"), len(text) > longTextThreshold:
		return ControlTextarea
	default:
		return ControlInput
	}
}

func lastSegment(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	if idx := strings.Index(path, "["); idx >= 0 {
		path = path[:idx]
	}
	return path
}

func looksLikeColor(text string) bool {
	if strings.HasPrefix(text, "#") && (len(text) == 4 || len(text) == 7 || len(text) == 9) {
		return true
	}
	return strings.HasPrefix(text, "rgb(") || strings.HasPrefix(text, "rgba(") ||
		strings.HasPrefix(text, "hsl(") || strings.HasPrefix(text, "hsla(")
}

func looksLikeGradient(text string) bool {
	return strings.Contains(text, "linear-gradient(") || strings.Contains(text, "radial-gradient(")
}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".avif"}

func looksLikeImage(key, text string) bool {
	lowered := strings.ToLower(text)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	if strings.HasSuffix(key, "image") || strings.HasSuffix(key, "img") || strings.HasSuffix(key, "logo") {
		return strings.HasPrefix(lowered, "http://") || strings.HasPrefix(lowered, "https://") || strings.HasPrefix(lowered, "/")
	}
	return false
}

package interfaces

// RenderOptions customises rich text rendering.
type RenderOptions struct {
	// Extensions names the goldmark extensions to enable. Empty selects the
	// default set (GFM, linkify, task lists).
	Extensions []string
	// HardWraps renders single newlines as <br>.
	HardWraps bool
	// SafeMode suppresses raw HTML passthrough in the source text.
	SafeMode bool
}

// RichTextRenderer converts rich text markup into HTML.
type RichTextRenderer interface {
	Render(source []byte) ([]byte, error)
	RenderWithOptions(source []byte, opts RenderOptions) ([]byte, error)
}

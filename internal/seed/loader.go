package seed

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-editor/nodes"
)

// LoadDir parses every markdown file in dir matching pattern. Files are
// visited in name order so later documents win when sections collide.
func LoadDir(dir, pattern string) ([]*Document, error) {
	if pattern == "" {
		pattern = "*.md"
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("seed: glob %s: %w", pattern, err)
	}
	sort.Strings(matches)

	documents := make([]*Document, 0, len(matches))
	for _, path := range matches {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("seed: read %s: %w", path, err)
		}
		document, err := ParseDocument(source)
		if err != nil {
			return nil, fmt.Errorf("seed: %s: %w", filepath.Base(path), err)
		}
		documents = append(documents, document)
	}
	return documents, nil
}

// Merge flattens documents into a single node map, later documents winning.
func Merge(documents []*Document) map[string]nodes.Node {
	merged := map[string]nodes.Node{}
	for _, document := range documents {
		for id, node := range document.Nodes() {
			merged[id] = node
		}
	}
	return merged
}

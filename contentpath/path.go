// Package contentpath implements the string addressing scheme used for
// editable content: dot-separated object fields with bracket-indexed array
// elements, e.g. "hero.mainHeading.line1" or "features[2].benefits[0]".
package contentpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrPathRequired = errors.New("contentpath: path is required")
	ErrPathInvalid  = errors.New("contentpath: path is invalid")
)

// Segment is a single step of a parsed path: either an object key or an
// array index attached to the preceding key.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// Parse splits a content path into ordered segments.
//
// Invariants:
// - No leading/trailing dots and no empty key segments.
// - Bracket indices are non-negative integers and always follow a key.
func Parse(path string) ([]Segment, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, ErrPathRequired
	}

	segments := make([]Segment, 0, 4)
	for _, part := range strings.Split(trimmed, ".") {
		if part == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrPathInvalid, path)
		}
		key, indices, err := splitIndexes(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPathInvalid, err)
		}
		if key == "" {
			return nil, fmt.Errorf("%w: index without key in %q", ErrPathInvalid, path)
		}
		segments = append(segments, Segment{Key: key})
		for _, idx := range indices {
			segments = append(segments, Segment{Index: idx, IsIndex: true})
		}
	}
	return segments, nil
}

func splitIndexes(part string) (string, []int, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if strings.ContainsAny(part, "[]") {
			return "", nil, fmt.Errorf("unbalanced brackets in %q", part)
		}
		return part, nil, nil
	}

	key := part[:open]
	rest := part[open:]
	indices := []int{}
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("unexpected characters after index in %q", part)
		}
		closing := strings.IndexByte(rest, ']')
		if closing < 0 {
			return "", nil, fmt.Errorf("unbalanced brackets in %q", part)
		}
		raw := rest[1:closing]
		idx, err := strconv.Atoi(raw)
		if err != nil || idx < 0 {
			return "", nil, fmt.Errorf("invalid array index %q", raw)
		}
		indices = append(indices, idx)
		rest = rest[closing+1:]
	}
	return key, indices, nil
}

// Resolve walks a path against a decoded content tree (maps, slices, and
// scalars). Missing segments resolve to (nil, false) rather than an error so
// callers can treat absent values as empty.
func Resolve(root any, path string) (any, bool) {
	segments, err := Parse(path)
	if err != nil {
		return nil, false
	}

	current := root
	for _, seg := range segments {
		if seg.IsIndex {
			list, ok := current.([]any)
			if !ok || seg.Index >= len(list) {
				return nil, false
			}
			current = list[seg.Index]
			continue
		}
		switch typed := current.(type) {
		case map[string]any:
			value, ok := typed[seg.Key]
			if !ok {
				return nil, false
			}
			current = value
		default:
			return nil, false
		}
	}
	return current, true
}

// Child appends an object key to a parent path.
func Child(parent, key string) string {
	parent = strings.TrimSpace(parent)
	key = strings.TrimSpace(key)
	if parent == "" {
		return key
	}
	if key == "" {
		return parent
	}
	return parent + "." + key
}

// Item appends a positional array suffix to an array path. The suffix is
// positional, not a stable identifier; see the registry arena for reorder-safe
// item identity.
func Item(arrayPath string, index int) string {
	return fmt.Sprintf("%s[%d]", strings.TrimSpace(arrayPath), index)
}

// ParentOf returns the path one segment up, or "" for a root path.
func ParentOf(path string) string {
	segments, err := Parse(path)
	if err != nil || len(segments) < 2 {
		return ""
	}
	return join(segments[:len(segments)-1])
}

func join(segments []Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		if seg.IsIndex {
			b.WriteString(seg.String())
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Key)
	}
	return b.String()
}

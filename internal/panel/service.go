package panel

import (
	"github.com/goliatone/go-editor/contentpath"
	"github.com/goliatone/go-editor/internal/logging"
	schemainternal "github.com/goliatone/go-editor/internal/schema"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/pkg/interfaces"
	"github.com/goliatone/go-editor/schema"
)

// Store is the slice of the content registry the panel needs.
type Store interface {
	Get(id string) (nodes.Node, error)
	Update(id string, patch nodes.Patch) bool
}

// Descriptor is everything the panel needs to render an editor for one node:
// the resolved value, the inferred widget, the declared field when the node
// belongs to a registered section, and any validation performed live.
type Descriptor struct {
	Path    string
	Label   string
	Kind    schema.FieldKind
	Control Control
	Value   any
	Field   *schema.Field
	Options []schema.Option
}

// Service resolves panel descriptors and opens edit buffers against the
// content store.
type Service struct {
	store    Store
	registry *schemainternal.Registry
	logger   interfaces.Logger
}

// Option configures the panel service.
type Option func(*Service)

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(store Store, registry *schemainternal.Registry, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if registry == nil {
		registry = schemainternal.NewRegistry()
	}
	service := &Service{
		store:    store,
		registry: registry,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Describe resolves the editing descriptor for a node ID.
func (s *Service) Describe(id string) (Descriptor, error) {
	node, err := s.store.Get(id)
	if err != nil {
		return Descriptor{}, err
	}

	descriptor := Descriptor{
		Path:  node.ID,
		Label: node.Label,
		Kind:  node.Kind,
		Value: node.Value,
	}
	if descriptor.Label == "" {
		descriptor.Label = labelFromPath(node.ID)
	}

	if field, ok := s.fieldFor(node.ID); ok {
		descriptor.Field = &field
		descriptor.Options = field.Options
		if field.Label != "" {
			descriptor.Label = field.Label
		}
		if descriptor.Kind == "" {
			descriptor.Kind = field.Kind
		}
	}

	descriptor.Control = InferControl(node.ID, descriptor.Kind, node.Value)
	return descriptor, nil
}

// Validate runs the declared field rules against a candidate value without
// touching the store. Nodes outside any registered section always pass.
func (s *Service) Validate(id string, value any) []string {
	field, ok := s.fieldFor(id)
	if !ok {
		return nil
	}
	return schemainternal.ValidateField(value, field)
}

// Open starts an edit buffer for a node. Changes accumulate in the buffer
// until Apply writes them back to the store in one update.
func (s *Service) Open(id string) (*Buffer, error) {
	node, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return newBuffer(s, node), nil
}

func (s *Service) fieldFor(path string) (schema.Field, bool) {
	segments, err := contentpath.Parse(path)
	if err != nil || len(segments) < 2 {
		return schema.Field{}, false
	}
	leaf := segments[len(segments)-1]
	if leaf.IsIndex {
		return schema.Field{}, false
	}
	return s.registry.FieldFor(segments[0].Key, leaf.Key)
}

func labelFromPath(path string) string {
	segment := lastSegment(path)
	if segment == "" {
		return path
	}

	var out []rune
	for i, r := range segment {
		if i == 0 {
			out = append(out, toUpper(r))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			out = append(out, ' ')
		}
		out = append(out, r)
	}
	return string(out)
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

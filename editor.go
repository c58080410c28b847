package editor

import (
	"context"
	"net/http"

	"github.com/goliatone/go-editor/internal/autosave"
	"github.com/goliatone/go-editor/internal/cmsclient"
	"github.com/goliatone/go-editor/internal/di"
	editorhttp "github.com/goliatone/go-editor/internal/http"
	"github.com/goliatone/go-editor/internal/panel"
	"github.com/goliatone/go-editor/internal/publisher"
	"github.com/goliatone/go-editor/internal/registry"
	schemainternal "github.com/goliatone/go-editor/internal/schema"
	"github.com/goliatone/go-editor/internal/selection"
	"github.com/goliatone/go-editor/pkg/interfaces"
)

// ContentStore exports the content node registry for consumers of the editor package.
type ContentStore = registry.Store

// ContentLoader exports the startup content loading contract.
type ContentLoader = registry.Loader

// ContentLoaderFunc adapts a function to the ContentLoader contract.
type ContentLoaderFunc = registry.LoaderFunc

// ChangeEvent exports the content change notification payload.
type ChangeEvent = registry.ChangeEvent

// SchemaRegistry exports the section schema registry.
type SchemaRegistry = schemainternal.Registry

// AutosaveManager exports the debounced save manager.
type AutosaveManager = autosave.Manager

// SaveResult exports the autosave outcome payload.
type SaveResult = autosave.SaveResult

// PublisherService exports the draft/publish service.
type PublisherService = publisher.Service

// PublishValidationError exports the publish gate failure payload.
type PublishValidationError = publisher.ValidationError

// PanelService exports the editor panel service.
type PanelService = panel.Service

// PanelDescriptor exports the rendered panel descriptor.
type PanelDescriptor = panel.Descriptor

// EditBuffer exports the staged panel edit buffer.
type EditBuffer = panel.Buffer

// SelectionTracker exports the hover/selection tracker.
type SelectionTracker = selection.Tracker

// SelectionEvent exports selection state change notifications.
type SelectionEvent = selection.Event

// CMSClient exports the read-only published page client.
type CMSClient = cmsclient.Client

// CMSPage exports the published page payload.
type CMSPage = cmsclient.Page

// RichTextRenderer exports the markdown rendering contract.
type RichTextRenderer = interfaces.RichTextRenderer

// EditorAPI exports the HTTP surface over the editor services.
type EditorAPI = editorhttp.EditorAPI

// Module represents the top level editor runtime façade.
type Module struct {
	container *di.Container
}

// New constructs an editor module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Store returns the content node registry.
func (m *Module) Store() *ContentStore {
	return m.container.Store()
}

// Schemas returns the section schema registry.
func (m *Module) Schemas() *SchemaRegistry {
	return m.container.SchemaRegistry()
}

// Autosave returns the debounced save manager.
func (m *Module) Autosave() *AutosaveManager {
	return m.container.AutosaveManager()
}

// Publisher returns the draft/publish service; nil when publishing is
// disabled.
func (m *Module) Publisher() *PublisherService {
	return m.container.PublisherService()
}

// Panel returns the editor panel service.
func (m *Module) Panel() *PanelService {
	return m.container.PanelService()
}

// Selection returns the hover/selection tracker; nil when the feature is off.
func (m *Module) Selection() *SelectionTracker {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.SelectionTracker()
}

// RichText returns the configured markdown renderer.
func (m *Module) RichText() RichTextRenderer {
	return m.container.RichTextRenderer()
}

// CMS returns the read-only page client; nil when the feature is off.
func (m *Module) CMS() *CMSClient {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CMSClient()
}

// RegisterRoutes attaches the editor HTTP endpoints to the provided mux.
func (m *Module) RegisterRoutes(mux *http.ServeMux, opts ...editorhttp.EditorOption) error {
	return m.container.EditorAPI(opts...).Register(mux)
}

// Close flushes pending saves and releases resources the module owns.
func (m *Module) Close(ctx context.Context) error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close(ctx)
}

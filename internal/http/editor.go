package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-editor/internal/autosave"
	"github.com/goliatone/go-editor/internal/panel"
	"github.com/goliatone/go-editor/internal/publisher"
	"github.com/goliatone/go-editor/internal/registry"
	schemainternal "github.com/goliatone/go-editor/internal/schema"
	"github.com/goliatone/go-editor/internal/selection"
)

// EditorAPI registers the HTTP endpoints the editor overlay talks to: content
// nodes, section schemas, drafts, publishing, and selection state.
type EditorAPI struct {
	basePath  string
	store     *registry.Store
	schemas   *schemainternal.Registry
	autosave  *autosave.Manager
	publisher *publisher.Service
	panel     *panel.Service
	selection *selection.Tracker
}

// EditorOption mutates the EditorAPI configuration.
type EditorOption func(*EditorAPI)

// NewEditorAPI constructs an EditorAPI instance.
func NewEditorAPI(opts ...EditorOption) *EditorAPI {
	api := &EditorAPI{
		basePath: "/editor/api",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/editor/api").
func WithBasePath(path string) EditorOption {
	return func(api *EditorAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithStore wires the content store.
func WithStore(store *registry.Store) EditorOption {
	return func(api *EditorAPI) {
		if api != nil {
			api.store = store
		}
	}
}

// WithSchemaRegistry wires the section schema registry.
func WithSchemaRegistry(schemas *schemainternal.Registry) EditorOption {
	return func(api *EditorAPI) {
		if api != nil {
			api.schemas = schemas
		}
	}
}

// WithAutosaveManager wires the debounced autosave manager.
func WithAutosaveManager(manager *autosave.Manager) EditorOption {
	return func(api *EditorAPI) {
		if api != nil {
			api.autosave = manager
		}
	}
}

// WithPublisherService wires the draft/publish service.
func WithPublisherService(service *publisher.Service) EditorOption {
	return func(api *EditorAPI) {
		if api != nil {
			api.publisher = service
		}
	}
}

// WithPanelService wires the editor panel service.
func WithPanelService(service *panel.Service) EditorOption {
	return func(api *EditorAPI) {
		if api != nil {
			api.panel = service
		}
	}
}

// WithSelectionTracker wires the hover/selection tracker.
func WithSelectionTracker(tracker *selection.Tracker) EditorOption {
	return func(api *EditorAPI) {
		if api != nil {
			api.selection = tracker
		}
	}
}

// Register attaches the editor endpoints to the provided mux.
func (api *EditorAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: editor api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerNodeRoutes(mux, base)
	api.registerSectionRoutes(mux, base)
	api.registerPublishingRoutes(mux, base)
	api.registerSelectionRoutes(mux, base)

	return nil
}

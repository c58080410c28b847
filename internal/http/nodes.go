package http

import (
	"encoding/json"
	"net/http"

	"github.com/goliatone/go-editor/internal/registry"
	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/schema"
)

type nodeResponse struct {
	ID       string            `json:"id"`
	Kind     schema.FieldKind  `json:"kind"`
	Label    string            `json:"label,omitempty"`
	Value    any               `json:"value,omitempty"`
	Style    map[string]string `json:"style_attributes,omitempty"`
	Metadata map[string]any    `json:"metadata,omitempty"`
}

type nodeRegisterPayload struct {
	ID       string            `json:"id"`
	Kind     string            `json:"kind"`
	Label    string            `json:"label"`
	Value    any               `json:"value"`
	Style    map[string]string `json:"style_attributes"`
	Metadata map[string]any    `json:"metadata"`
}

type nodeUpdatePayload struct {
	Label *string           `json:"label"`
	Value json.RawMessage   `json:"value"`
	Style map[string]string `json:"style_attributes"`
}

type descriptorResponse struct {
	Path    string           `json:"path"`
	Label   string           `json:"label"`
	Kind    schema.FieldKind `json:"kind"`
	Control string           `json:"control"`
	Value   any              `json:"value,omitempty"`
	Field   *schema.Field    `json:"field,omitempty"`
	Options []schema.Option  `json:"options,omitempty"`
}

func buildNodeResponse(node nodes.Node) nodeResponse {
	return nodeResponse{
		ID:       node.ID,
		Kind:     node.Kind,
		Label:    node.Label,
		Value:    node.Value,
		Style:    node.Style,
		Metadata: node.Metadata,
	}
}

func buildNodeResponses(list []nodes.Node) []nodeResponse {
	out := make([]nodeResponse, 0, len(list))
	for _, node := range list {
		out = append(out, buildNodeResponse(node))
	}
	return out
}

func (api *EditorAPI) registerNodeRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "nodes")
	mux.HandleFunc("GET "+root, api.handleNodeList)
	mux.HandleFunc("POST "+root, api.handleNodeRegister)
	mux.HandleFunc("GET "+root+"/{id}", api.handleNodeGet)
	mux.HandleFunc("PUT "+root+"/{id}", api.handleNodeUpdate)
	mux.HandleFunc("GET "+root+"/{id}/descriptor", api.handleNodeDescriptor)
}

func (api *EditorAPI) handleNodeList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, buildNodeResponses(api.store.All()))
}

func (api *EditorAPI) handleNodeGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	node, err := api.store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildNodeResponse(node))
}

func (api *EditorAPI) handleNodeRegister(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload nodeRegisterPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	kind, err := schema.ParseFieldKind(payload.Kind)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	node := nodes.Node{
		ID:       payload.ID,
		Kind:     kind,
		Label:    payload.Label,
		Value:    payload.Value,
		Style:    payload.Style,
		Metadata: payload.Metadata,
	}
	if err := api.store.Register(node); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	registered, err := api.store.Get(node.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, buildNodeResponse(registered))
}

func (api *EditorAPI) handleNodeUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id := r.PathValue("id")
	var payload nodeUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	patch := nodes.Patch{
		Label: payload.Label,
		Style: payload.Style,
	}
	if len(payload.Value) > 0 {
		var value any
		if err := json.Unmarshal(payload.Value, &value); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
			return
		}
		patch.Value = value
		patch.SetValue = true
	}
	if api.panel != nil && patch.SetValue {
		if issues := api.panel.Validate(id, patch.Value); len(issues) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:  "validation_failed",
				Fields: map[string][]string{id: issues},
			})
			return
		}
	}
	if !api.store.Update(id, patch) {
		writeError(w, &registry.NotFoundError{ID: id})
		return
	}
	if api.autosave != nil {
		if err := api.autosave.Schedule(); err != nil {
			writeError(w, err)
			return
		}
	}
	node, err := api.store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildNodeResponse(node))
}

func (api *EditorAPI) handleNodeDescriptor(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.panel == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	descriptor, err := api.panel.Describe(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, descriptorResponse{
		Path:    descriptor.Path,
		Label:   descriptor.Label,
		Kind:    descriptor.Kind,
		Control: string(descriptor.Control),
		Value:   descriptor.Value,
		Field:   descriptor.Field,
		Options: descriptor.Options,
	})
}

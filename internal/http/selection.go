package http

import "net/http"

type selectionStateResponse struct {
	Enabled  bool   `json:"enabled"`
	Hovered  string `json:"hovered,omitempty"`
	Selected string `json:"selected,omitempty"`
}

type selectionTargetPayload struct {
	ID string `json:"id"`
}

type selectionEnabledPayload struct {
	Enabled bool `json:"enabled"`
}

func (api *EditorAPI) registerSelectionRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "selection")
	mux.HandleFunc("GET "+root, api.handleSelectionState)
	mux.HandleFunc("POST "+root+"/hover", api.handleSelectionHover)
	mux.HandleFunc("POST "+root+"/select", api.handleSelectionSelect)
	mux.HandleFunc("POST "+root+"/enabled", api.handleSelectionEnabled)
}

func (api *EditorAPI) selectionState() selectionStateResponse {
	state := selectionStateResponse{Enabled: api.selection.Enabled()}
	if hovered, ok := api.selection.Hovered(); ok {
		state.Hovered = hovered
	}
	if selected, ok := api.selection.Selected(); ok {
		state.Selected = selected
	}
	return state
}

func (api *EditorAPI) handleSelectionState(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.selection == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, api.selectionState())
}

func (api *EditorAPI) handleSelectionHover(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.selection == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload selectionTargetPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	if payload.ID == "" {
		api.selection.ClearHover()
	} else {
		api.selection.Hover(payload.ID)
	}
	writeJSON(w, http.StatusOK, api.selectionState())
}

func (api *EditorAPI) handleSelectionSelect(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.selection == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload selectionTargetPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	if payload.ID == "" {
		api.selection.ClearSelection()
	} else {
		api.selection.Select(payload.ID)
	}
	writeJSON(w, http.StatusOK, api.selectionState())
}

func (api *EditorAPI) handleSelectionEnabled(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.selection == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload selectionEnabledPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	if payload.Enabled {
		api.selection.Enable()
	} else {
		api.selection.Disable()
	}
	writeJSON(w, http.StatusOK, api.selectionState())
}

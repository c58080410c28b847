package http

import (
	"errors"
	"net/http"

	schemainternal "github.com/goliatone/go-editor/internal/schema"
	"github.com/goliatone/go-editor/schema"
)

func (api *EditorAPI) registerSectionRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "sections")
	mux.HandleFunc("GET "+root, api.handleSectionList)
	mux.HandleFunc("POST "+root, api.handleSectionRegister)
	mux.HandleFunc("GET "+root+"/{name}", api.handleSectionGet)
}

func (api *EditorAPI) handleSectionList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.schemas == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, api.schemas.Sections())
}

func (api *EditorAPI) handleSectionGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.schemas == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	section, err := api.schemas.Section(r.PathValue("name"))
	if err != nil {
		if errors.Is(err, schemainternal.ErrSectionUnknown) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (api *EditorAPI) handleSectionRegister(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.schemas == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var section schema.Section
	if err := decodeJSON(r, &section); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	if err := api.schemas.Register(section); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_definition", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, section)
}

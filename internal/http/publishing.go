package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-editor/nodes"
	"github.com/goliatone/go-editor/snapshots"
)

type snapshotResponse struct {
	Version string                `json:"version"`
	SavedAt time.Time             `json:"saved_at"`
	Content map[string]nodes.Node `json:"content,omitempty"`
}

type publishPayload struct {
	ActorID string `json:"actor_id"`
}

type statusResponse struct {
	PendingAutosave  bool   `json:"pending_autosave"`
	UnsavedChanges   bool   `json:"unsaved_changes"`
	DraftVersion     string `json:"draft_version,omitempty"`
	PublishedVersion string `json:"published_version,omitempty"`
}

func buildSnapshotResponse(snapshot snapshots.Snapshot, includeContent bool) snapshotResponse {
	out := snapshotResponse{
		Version: snapshot.Version,
		SavedAt: snapshot.SavedAt,
	}
	if includeContent {
		out.Content = snapshot.Content
	}
	return out
}

func (api *EditorAPI) registerPublishingRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("POST "+joinPath(base, "draft"), api.handleDraftSave)
	mux.HandleFunc("GET "+joinPath(base, "draft"), api.handleDraftGet)
	mux.HandleFunc("POST "+joinPath(base, "publish"), api.handlePublish)
	mux.HandleFunc("GET "+joinPath(base, "published"), api.handlePublishedGet)
	mux.HandleFunc("POST "+joinPath(base, "autosave/flush"), api.handleAutosaveFlush)
	mux.HandleFunc("GET "+joinPath(base, "status"), api.handleStatus)
}

func (api *EditorAPI) handleDraftSave(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.publisher == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	snapshot, err := api.publisher.Save(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, buildSnapshotResponse(snapshot, false))
}

func (api *EditorAPI) handleDraftGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.publisher == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	snapshot, err := api.publisher.Draft(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildSnapshotResponse(snapshot, true))
}

func (api *EditorAPI) handlePublish(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.publisher == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload publishPayload
	// absent body means an anonymous publish
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	actor := uuid.Nil
	if payload.ActorID != "" {
		parsed, err := uuid.Parse(payload.ActorID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid actor_id"})
			return
		}
		actor = parsed
	}
	snapshot, err := api.publisher.Publish(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, buildSnapshotResponse(snapshot, false))
}

func (api *EditorAPI) handlePublishedGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.publisher == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	snapshot, err := api.publisher.Published(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildSnapshotResponse(snapshot, true))
}

func (api *EditorAPI) handleAutosaveFlush(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.autosave == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	result := api.autosave.ForceSave(r.Context())
	if result.Err != nil {
		writeError(w, result.Err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"version":  result.Version,
		"saved_at": result.SavedAt,
		"skipped":  result.Skipped,
	})
}

func (api *EditorAPI) handleStatus(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.publisher == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	status := statusResponse{}
	if api.autosave != nil {
		status.PendingAutosave = api.autosave.HasPending()
	}
	unsaved, err := api.publisher.HasUnsavedChanges(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	status.UnsavedChanges = unsaved
	if draft, err := api.publisher.Draft(r.Context()); err == nil {
		status.DraftVersion = draft.Version
	}
	if published, err := api.publisher.Published(r.Context()); err == nil {
		status.PublishedVersion = published.Version
	}
	writeJSON(w, http.StatusOK, status)
}

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-editor/internal/publisher"
	"github.com/goliatone/go-editor/internal/registry"
	"github.com/goliatone/go-editor/snapshots"
)

type errorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var nodeNotFound *registry.NotFoundError
	if errors.As(err, &nodeNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: nodeNotFound.Error(),
		}
	}

	var snapshotNotFound *snapshots.NotFoundError
	if errors.As(err, &snapshotNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: snapshotNotFound.Error(),
		}
	}

	if errors.Is(err, publisher.ErrNothingToPublish) {
		return http.StatusConflict, errorResponse{
			Error:   "nothing_to_publish",
			Message: err.Error(),
		}
	}

	var blocked *publisher.ValidationError
	if errors.As(err, &blocked) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: blocked.Error(),
			Fields:  blocked.Fields,
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

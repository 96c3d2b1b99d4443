// Package handlers provides HTTP request handlers for the API endpoints.
// It decodes requests, runs the centerline and tube pipeline, and formats JSON responses.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/evarsim/core/internal/centerline"
	"github.com/evarsim/core/internal/device"
	"github.com/evarsim/core/internal/models"
)

// RequestIDHeader carries the id assigned to each request by the middleware.
const RequestIDHeader = "X-Request-ID"

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		slog.Error("failed to encode response", "path", r.URL.Path, "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, models.ErrorResponse{
		Error:     message,
		RequestID: r.Header.Get(RequestIDHeader),
	})
}

// writePipelineError maps a pipeline error to a status code: invalid input is
// 400, a Failure or missing geometry is 422, anything else is 500.
func writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	var failure *device.Failure
	switch {
	case errors.Is(err, models.ErrInvalidParameter),
		errors.Is(err, models.ErrInvalidGraph),
		errors.Is(err, models.ErrTubeIndexOutOfRange):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &failure):
		slog.Warn("device build failed", "request_id", r.Header.Get(RequestIDHeader), "error", err)
		writeError(w, r, http.StatusUnprocessableEntity, failure.Message)
	case errors.Is(err, centerline.ErrNoGeometry):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("unexpected pipeline error", "request_id", r.Header.Get(RequestIDHeader), "error", err)
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// Package handlers provides HTTP request handlers for the API endpoints.
// It decodes requests, runs the centerline and tube pipeline, and formats JSON responses.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/evarsim/core/internal/models"
)

const serviceName = "evarsim-api"

type HealthResponse struct {
	Status    string             `json:"status"`
	Timestamp string             `json:"timestamp"`
	Service   string             `json:"service"`
	Uptime    string             `json:"uptime,omitempty"`
	Details   map[string]string  `json:"details,omitempty"`
	Limits    map[string]float64 `json:"limits,omitempty"`
}

var startTime = time.Now()

// parameterLimits mirrors the ranges accepted by the request parsers.
var parameterLimits = map[string]float64{
	"min_radius":     models.MinRadius,
	"max_radius":     models.MaxRadius,
	"min_length":     models.MinLength,
	"max_length":     models.MaxLength,
	"min_resolution": models.MinResolution,
	"max_resolution": models.MaxResolution,
	"max_tubes":      models.MaxTubes,
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
		Uptime:    time.Since(startTime).String(),
		Details: map[string]string{
			"go_version": runtime.Version(),
			"num_cpu":    strconv.Itoa(runtime.NumCPU()),
			"goroutines": strconv.Itoa(runtime.NumGoroutine()),
		},
		Limits: parameterLimits,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode health response", "error", err)
	}
}

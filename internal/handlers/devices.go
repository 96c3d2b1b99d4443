// Package handlers provides HTTP request handlers for the API endpoints.
// It decodes requests, runs the centerline and tube pipeline, and formats JSON responses.
package handlers

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/evarsim/core/internal/centerline"
	"github.com/evarsim/core/internal/device"
	"github.com/evarsim/core/internal/models"
	"github.com/evarsim/core/internal/parser"
)

// DeviceHandler serves tube generation requests with fixed pipeline options.
type DeviceHandler struct {
	Options device.Options
}

func NewDeviceHandler(opts device.Options) *DeviceHandler {
	return &DeviceHandler{Options: opts}
}

// Build generates one mesh per requested tube. When the request names an
// active tube only that slot is rebuilt and returned.
func (h *DeviceHandler) Build(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Failed to read body")
		return
	}

	defer r.Body.Close()

	req, err := parser.ParseDeviceRequest(body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid device request: "+err.Error())
		return
	}

	includeMesh := r.URL.Query().Get("mesh") != "false"

	if req.Active != nil {
		response, err := h.regenerate(req, includeMesh)
		if err != nil {
			writePipelineError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, response)
		return
	}

	result, err := device.BuildFromSource(req.Source, req.Tubes, req.Mode, h.Options)
	if err != nil {
		writePipelineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toResponse(result, includeMesh))
}

func (h *DeviceHandler) regenerate(req *models.DeviceRequest, includeMesh bool) (*models.DeviceResponse, error) {
	set, err := models.NewTubeSet(len(req.Tubes), 0)
	if err != nil {
		return nil, err
	}
	for i, p := range req.Tubes {
		if err := set.Set(i, p); err != nil {
			return nil, err
		}
	}

	active := *req.Active
	sink := device.NewMemorySink()
	if err := device.Regenerate(req.Source, set, active, sink, h.Options); err != nil {
		return nil, err
	}

	mesh, _ := sink.Get(active)
	return &models.DeviceResponse{
		Mode:   models.ModeSeparate,
		Meshes: []models.MeshResponse{meshResponse(active, mesh, includeMesh)},
	}, nil
}

// Place lays out count identical tubes along one branch of the source.
func (h *DeviceHandler) Place(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Failed to read body")
		return
	}

	defer r.Body.Close()

	req, err := parser.ParsePlacementRequest(body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid placement request: "+err.Error())
		return
	}

	path, err := centerline.Extract(req.Source, req.Branch)
	if err != nil {
		writePipelineError(w, r, err)
		return
	}

	result, err := device.PlaceTubes(path, req.Placement, h.Options)
	if err != nil {
		writePipelineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toResponse(result, r.URL.Query().Get("mesh") != "false"))
}

func toResponse(result *device.Result, includeMesh bool) *models.DeviceResponse {
	response := &models.DeviceResponse{
		Mode:      result.Mode,
		Positions: result.Positions,
		Meshes:    make([]models.MeshResponse, 0, len(result.Meshes)),
	}
	for i, mesh := range result.Meshes {
		slot := 0
		if result.Mode == models.ModeSeparate {
			slot = result.Slots[i]
		}
		response.Meshes = append(response.Meshes, meshResponse(slot, mesh, includeMesh))
	}
	return response
}

func meshResponse(slot int, mesh *models.TubeMesh, includeMesh bool) models.MeshResponse {
	m := models.MeshResponse{
		ID:    uuid.NewString(),
		Slot:  slot,
		Stats: mesh.Stats(),
	}
	if includeMesh {
		m.Mesh = mesh
	}
	return m
}

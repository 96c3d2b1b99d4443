// Package parser provides utilities for parsing and validating request bodies.
// It decodes polyline graphs and device requests and fills in defaults.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/evarsim/core/internal/models"
)

func ParseGraph(data []byte) (*models.PolylineGraph, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty graph data")
	}

	var graph models.PolylineGraph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
	}

	if len(graph.Points) == 0 {
		return nil, fmt.Errorf("invalid graph: missing points field")
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}

	return &graph, nil
}

func ParseDeviceRequest(data []byte) (*models.DeviceRequest, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty request data")
	}

	var req models.DeviceRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal device request: %w", err)
	}

	if err := validateSource(req.Source); err != nil {
		return nil, err
	}

	if len(req.Tubes) == 0 {
		return nil, fmt.Errorf("invalid request: missing tubes field")
	}
	if len(req.Tubes) > models.MaxTubes {
		return nil, fmt.Errorf("%w: %d tubes, at most %d", models.ErrInvalidParameter, len(req.Tubes), models.MaxTubes)
	}

	mode, err := parseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	req.Mode = mode

	for i, tube := range req.Tubes {
		if err := tube.Validate(); err != nil {
			return nil, fmt.Errorf("tube %d: %w", i, err)
		}
	}

	if req.Active != nil && (*req.Active < 0 || *req.Active >= len(req.Tubes)) {
		return nil, fmt.Errorf("%w: active %d (have %d)", models.ErrTubeIndexOutOfRange, *req.Active, len(req.Tubes))
	}

	return &req, nil
}

func ParsePlacementRequest(data []byte) (*models.PlacementRequest, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty request data")
	}

	var req models.PlacementRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal placement request: %w", err)
	}

	if err := validateSource(req.Source); err != nil {
		return nil, err
	}

	if req.Branch < 0 {
		return nil, fmt.Errorf("%w: branch %d is negative", models.ErrInvalidParameter, req.Branch)
	}

	mode, err := parseMode(req.Placement.Mode)
	if err != nil {
		return nil, err
	}
	req.Placement.Mode = mode

	if err := req.Placement.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}

func validateSource(src models.Source) error {
	if len(src.Curve) == 0 && src.Graph == nil && len(src.Surface) == 0 {
		return fmt.Errorf("invalid request: missing source field")
	}
	if src.Graph != nil {
		return src.Graph.Validate()
	}
	return nil
}

// parseMode defaults an empty mode to merged.
func parseMode(mode models.PlacementMode) (models.PlacementMode, error) {
	if mode == "" {
		return models.ModeMerged, nil
	}
	if !mode.Valid() {
		return "", fmt.Errorf("%w: unknown mode %q", models.ErrInvalidParameter, mode)
	}
	return mode, nil
}

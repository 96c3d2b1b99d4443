package models

// Source carries exactly one kind of centerline input.
type Source struct {
	Curve   Path           `json:"curve,omitempty"`
	Graph   *PolylineGraph `json:"graph,omitempty"`
	Surface Path           `json:"surface,omitempty"`
}

// DeviceRequest asks for one mesh per tube, or only the active tube when set.
type DeviceRequest struct {
	Source Source           `json:"source"`
	Tubes  []TubeParameters `json:"tubes"`
	Mode   PlacementMode    `json:"mode"`
	Active *int             `json:"active,omitempty"`
}

// PlacementRequest asks for count identical tubes spread along one centerline.
type PlacementRequest struct {
	Source    Source    `json:"source"`
	Branch    int       `json:"branch,omitempty"`
	Placement Placement `json:"placement"`
}

// MeshResponse is one addressable mesh in a response.
type MeshResponse struct {
	ID    string    `json:"id"`
	Slot  int       `json:"slot"`
	Stats MeshStats `json:"stats"`
	Mesh  *TubeMesh `json:"mesh"`
}

// DeviceResponse lists the meshes produced for a request.
type DeviceResponse struct {
	Mode      PlacementMode  `json:"mode"`
	Positions []float64      `json:"positions,omitempty"`
	Meshes    []MeshResponse `json:"meshes"`
}

// ErrorResponse is the body returned for a failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yGraphJSON = `{
	"points": [
		{"X": 0, "Y": 0, "Z": 0},
		{"X": 0, "Y": 0, "Z": -10},
		{"X": 5, "Y": 0, "Z": 8},
		{"X": -5, "Y": 0, "Z": 8}
	],
	"segments": [[0, 1], [0, 2], [0, 3]]
}`

type branchesBody struct {
	Branches []struct {
		Index     int     `json:"index"`
		PointIDs  []int   `json:"point_ids"`
		ArcLength float64 `json:"arc_length"`
	} `json:"branches"`
	BranchPoints []int            `json:"branch_points"`
	Endpoints    []int            `json:"endpoints"`
	Connectivity map[string][]int `json:"connectivity"`
	Principal    int              `json:"principal"`
}

func TestBranchesHandler(t *testing.T) {
	t.Run("returns branch analysis", func(t *testing.T) {
		w := postJSON(t, BranchesHandler, "/branches", yGraphJSON)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var body branchesBody
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))

		require.Len(t, body.Branches, 3)
		assert.Equal(t, []int{0, 1}, body.Branches[0].PointIDs)
		assert.InDelta(t, 10, body.Branches[0].ArcLength, 1e-9)
		assert.Equal(t, []int{0}, body.BranchPoints)
		assert.Equal(t, []int{1, 2, 3}, body.Endpoints)
		assert.Equal(t, 0, body.Principal)
		assert.Len(t, body.Connectivity["0"], 3)
	})

	t.Run("dangling point index is 400", func(t *testing.T) {
		w := postJSON(t, BranchesHandler, "/branches", `{"points": [{"X": 0, "Y": 0, "Z": 0}], "segments": [[0, 9]]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Error, "Invalid graph")
	})

	t.Run("empty body is 400", func(t *testing.T) {
		w := postJSON(t, BranchesHandler, "/branches", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Error, "empty graph data")
	})

	t.Run("rejects GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/branches", strings.NewReader(yGraphJSON))
		w := httptest.NewRecorder()

		BranchesHandler(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Contains(t, w.Body.String(), "Method not allowed")
	})
}

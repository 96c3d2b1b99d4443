// Package handlers provides HTTP request handlers for the API endpoints.
// It decodes requests, runs the centerline and tube pipeline, and formats JSON responses.
package handlers

import (
	"io"
	"net/http"

	"github.com/evarsim/core/internal/branchgraph"
	"github.com/evarsim/core/internal/parser"
)

// BranchesHandler analyzes a posted polyline graph and returns its branches,
// branch points and endpoints.
func BranchesHandler(w http.ResponseWriter, r *http.Request) {
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

	graph, err := parser.ParseGraph(body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid graph: "+err.Error())
		return
	}

	analysis, err := branchgraph.Analyze(graph)
	if err != nil {
		writePipelineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, analysis)
}

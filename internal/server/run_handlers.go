package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/qsimlab/spindle/internal/domain"
	"github.com/qsimlab/spindle/internal/modules/runs"
)

type createRunRequest struct {
	Size    int `json:"size"`
	LeftSz  int `json:"left_sz"`
	RightSz int `json:"right_sz"`
}

type partialTransposeRequest struct {
	K int `json:"k"`
}

type matrixEntry struct {
	Row   int     `json:"row" msgpack:"row"`
	Col   int     `json:"col" msgpack:"col"`
	Coeff float64 `json:"coeff" msgpack:"coeff"`
}

type runResponse struct {
	ID          string        `json:"id" msgpack:"id"`
	Size        int           `json:"size" msgpack:"size"`
	LeftSz      int           `json:"left_sz" msgpack:"left_sz"`
	RightSz     int           `json:"right_sz" msgpack:"right_sz"`
	Transposes  []int         `json:"transposes" msgpack:"transposes"`
	Dim         int           `json:"dim" msgpack:"dim"`
	Matrix      []matrixEntry `json:"matrix" msgpack:"matrix"`
	Eigenvalues []float64     `json:"eigenvalues" msgpack:"eigenvalues"` // null when unavailable
	Negativity  *float64      `json:"negativity" msgpack:"negativity"`   // null when unavailable
	CreatedAt   time.Time     `json:"created_at" msgpack:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" msgpack:"updated_at"`
}

func newRunResponse(run *runs.Run) runResponse {
	// Snapshot gives a consistent copy; a concurrent partial transpose
	// cannot interleave with response building.
	snap := run.Snapshot()

	entries := make([]matrixEntry, 0, snap.Matrix.Len())
	for key, coeff := range snap.Matrix {
		entries = append(entries, matrixEntry{Row: key.Row, Col: key.Col, Coeff: coeff})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Row != entries[j].Row {
			return entries[i].Row < entries[j].Row
		}
		return entries[i].Col < entries[j].Col
	})

	return runResponse{
		ID:          snap.ID,
		Size:        snap.Size,
		LeftSz:      snap.LeftSz,
		RightSz:     snap.RightSz,
		Transposes:  snap.Transposes,
		Dim:         snap.Dim,
		Matrix:      entries,
		Eigenvalues: snap.Eigenvalues,
		Negativity:  snap.Negativity,
		CreatedAt:   snap.CreatedAt,
		UpdatedAt:   snap.UpdatedAt,
	}
}

// handleCreateRun handles POST /api/runs
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument))
		return
	}

	run, err := s.runs.Create(req.Size, req.LeftSz, req.RightSz)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newRunResponse(run))
}

// handleListRuns handles GET /api/runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	list := s.runs.List()
	out := make([]runResponse, 0, len(list))
	for _, run := range list {
		out = append(out, newRunResponse(run))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleGetRun handles GET /api/runs/{id}
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newRunResponse(run))
}

// handleDeleteRun handles DELETE /api/runs/{id}
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.runs.Delete(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePartialTranspose handles POST /api/runs/{id}/partial-transpose
func (s *Server) handlePartialTranspose(w http.ResponseWriter, r *http.Request) {
	var req partialTransposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument))
		return
	}

	run, err := s.runs.PartialTranspose(chi.URLParam(r, "id"), req.K)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newRunResponse(run))
}

// handleExportRun handles GET /api/runs/{id}/export, returning a compact
// msgpack snapshot for downstream tooling.
func (s *Server) handleExportRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	payload, err := msgpack.Marshal(newRunResponse(run))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-msgpack")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "run-"+run.ID+".msgpack"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/qsimlab/spindle/internal/domain"
)

type photonRequest struct {
	Bx           int `json:"bx"`
	By           int `json:"by"`
	Applications int `json:"applications"`
}

type photonTerm struct {
	Bx    int     `json:"bx"`
	By    int     `json:"by"`
	Coeff float64 `json:"coeff"`
}

type photonResponse struct {
	Bx           int          `json:"bx"`
	By           int          `json:"by"`
	Applications int          `json:"applications"`
	Terms        []photonTerm `json:"terms"`
}

// handlePhoton handles POST /api/photon: builds |bx, by> and applies Jz the
// requested number of times.
func (s *Server) handlePhoton(w http.ResponseWriter, r *http.Request) {
	var req photonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument))
		return
	}

	state, err := s.runs.EvolvePhoton(req.Bx, req.By, req.Applications)
	if err != nil {
		respondError(w, err)
		return
	}

	terms := make([]photonTerm, 0, state.Superposition().Len())
	for pair, coeff := range state.Superposition() {
		terms = append(terms, photonTerm{Bx: pair.Bx, By: pair.By, Coeff: coeff})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Bx != terms[j].Bx {
			return terms[i].Bx < terms[j].Bx
		}
		return terms[i].By < terms[j].By
	})

	respondJSON(w, http.StatusOK, photonResponse{
		Bx:           req.Bx,
		By:           req.By,
		Applications: req.Applications,
		Terms:        terms,
	})
}

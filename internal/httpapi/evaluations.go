package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"granteval-go/internal/services/evaluation"
)

type evaluationRequest struct {
	TeamScore *float64 `json:"teamScore"`
	IdeaScore *float64 `json:"ideaScore"`
	Notes     *string  `json:"notes"`
}

func (h *Handler) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	current, found, err := h.evaluations.Current(r.Context(), projectID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, toEvaluationResponse(current))
}

func (h *Handler) handleUpsertEvaluation(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	var req evaluationRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.TeamScore == nil || req.IdeaScore == nil {
		badRequest(w, "teamScore and ideaScore are required")
		return
	}

	id, err := h.evaluations.Upsert(r.Context(), evaluation.Input{
		ProjectID: projectID,
		TeamScore: *req.TeamScore,
		IdeaScore: *req.IdeaScore,
		Notes:     normalizeNotes(req.Notes),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) handleAggregateScores(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	agg, err := h.evaluations.AggregateScores(r.Context(), projectID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAggregateResponse(agg))
}

// normalizeNotes maps blank notes to no notes.
func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

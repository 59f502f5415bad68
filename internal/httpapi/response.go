package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"granteval-go/internal/model"
	"granteval-go/internal/repositories"
)

type projectResponse struct {
	ID           int64   `json:"id"`
	ExternalID   string  `json:"externalId"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Creator      string  `json:"creator"`
	Slug         string  `json:"slug"`
	Blurb        string  `json:"blurb"`
	AmountRaised float64 `json:"amountRaised"`
	FundingGoal  float64 `json:"fundingGoal"`
	MinFunding   float64 `json:"minFunding"`
	Stage        string  `json:"stage"`
	Type         string  `json:"type"`
	CreatedAt    int64   `json:"createdAt"`
	Causes       string  `json:"causes"`
	LastSynced   int64   `json:"lastSynced"`
}

type evaluationResponse struct {
	ID         int64   `json:"id"`
	ReviewerID string  `json:"reviewerId"`
	ProjectID  int64   `json:"projectId"`
	TeamScore  float64 `json:"teamScore"`
	IdeaScore  float64 `json:"ideaScore"`
	Notes      *string `json:"notes,omitempty"`
	CreatedAt  int64   `json:"createdAt"`
	UpdatedAt  int64   `json:"updatedAt"`
}

type scoreSummaryResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type aggregateResponse struct {
	TeamScore scoreSummaryResponse `json:"teamScore"`
	IdeaScore scoreSummaryResponse `json:"ideaScore"`
}

type syncResponse struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Created *int   `json:"created,omitempty"`
	Skipped *int   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

type errorResponse struct {
	Error  string             `json:"error"`
	Fields []fieldErrResponse `json:"fields,omitempty"`
}

type fieldErrResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func toProjectResponse(p model.Project) projectResponse {
	return projectResponse{
		ID:           p.ID,
		ExternalID:   p.ExternalID,
		Title:        p.Title,
		Description:  p.Description,
		Creator:      p.Creator,
		Slug:         p.Slug,
		Blurb:        p.Blurb,
		AmountRaised: p.AmountRaised,
		FundingGoal:  p.FundingGoal,
		MinFunding:   p.MinFunding,
		Stage:        p.Stage,
		Type:         p.Type,
		CreatedAt:    p.CreatedAt.UnixMilli(),
		Causes:       p.Causes,
		LastSynced:   p.LastSynced.UnixMilli(),
	}
}

func toEvaluationResponse(e model.Evaluation) evaluationResponse {
	return evaluationResponse{
		ID:         e.ID,
		ReviewerID: e.ReviewerID,
		ProjectID:  e.ProjectID,
		TeamScore:  e.TeamScore,
		IdeaScore:  e.IdeaScore,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt.UnixMilli(),
		UpdatedAt:  e.UpdatedAt.UnixMilli(),
	}
}

func toAggregateResponse(a model.AggregateScores) aggregateResponse {
	return aggregateResponse{
		TeamScore: scoreSummaryResponse{Average: a.TeamScore.Average, Count: a.TeamScore.Count},
		IdeaScore: scoreSummaryResponse{Average: a.IdeaScore.Average, Count: a.IdeaScore.Count},
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.As(err, &verr):
		resp := errorResponse{Error: "Scores must be between 0 and 10"}
		for _, f := range verr.Fields {
			resp.Fields = append(resp.Fields, fieldErrResponse{Field: f.Field, Message: f.Message})
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, repositories.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "project not found"})
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

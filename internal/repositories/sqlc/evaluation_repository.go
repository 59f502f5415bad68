package sqlc

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	db "granteval-go/internal/db/sqlc"
	"granteval-go/internal/model"
	"granteval-go/internal/repositories"
)

const foreignKeyViolation = "23503"

type EvaluationRepository struct {
	queries *db.Queries
}

func NewEvaluationRepository(queries *db.Queries) *EvaluationRepository {
	return &EvaluationRepository{queries: queries}
}

func (r *EvaluationRepository) GetByReviewerAndProject(ctx context.Context, reviewerID string, projectID int64) (model.Evaluation, error) {
	evaluation, err := r.queries.GetEvaluationByReviewerAndProject(ctx, db.GetEvaluationByReviewerAndProjectParams{
		ReviewerID: reviewerID,
		ProjectID:  projectID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Evaluation{}, repositories.ErrNotFound
	}
	if err != nil {
		return model.Evaluation{}, fmt.Errorf("get evaluation: %w", err)
	}
	return mapEvaluation(evaluation), nil
}

func (r *EvaluationRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Evaluation, error) {
	rows, err := r.queries.ListEvaluationsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list evaluations for project %d: %w", projectID, err)
	}
	evaluations := make([]model.Evaluation, 0, len(rows))
	for _, row := range rows {
		evaluations = append(evaluations, mapEvaluation(row))
	}
	return evaluations, nil
}

func (r *EvaluationRepository) Upsert(ctx context.Context, input model.EvaluationUpsert) (model.UpsertResult, error) {
	var notes pgtype.Text
	if input.Notes != nil {
		notes = pgtype.Text{String: *input.Notes, Valid: true}
	}

	row, err := r.queries.UpsertEvaluation(ctx, db.UpsertEvaluationParams{
		ReviewerID: input.ReviewerID,
		ProjectID:  input.ProjectID,
		TeamScore:  input.TeamScore,
		IdeaScore:  input.IdeaScore,
		Notes:      notes,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return model.UpsertResult{}, repositories.ErrNotFound
		}
		return model.UpsertResult{}, fmt.Errorf("upsert evaluation: %w", err)
	}
	return model.UpsertResult{ID: row.ID, Created: row.Inserted}, nil
}

func mapEvaluation(evaluation db.Evaluation) model.Evaluation {
	var notes *string
	if evaluation.Notes.Valid {
		n := evaluation.Notes.String
		notes = &n
	}
	return model.Evaluation{
		ID:         evaluation.ID,
		ReviewerID: evaluation.ReviewerID,
		ProjectID:  evaluation.ProjectID,
		TeamScore:  evaluation.TeamScore,
		IdeaScore:  evaluation.IdeaScore,
		Notes:      notes,
		CreatedAt:  timeOf(evaluation.CreatedAt),
		UpdatedAt:  timeOf(evaluation.UpdatedAt),
	}
}

package repositories

import (
	"context"
	"errors"

	"granteval-go/internal/model"
)

var ErrNotFound = errors.New("record not found")

type ProjectRepository interface {
	Upsert(ctx context.Context, input model.ProjectUpsert) (model.UpsertResult, error)
	List(ctx context.Context, limit int) ([]model.Project, error)
	GetByID(ctx context.Context, id int64) (model.Project, error)
}

type EvaluationRepository interface {
	GetByReviewerAndProject(ctx context.Context, reviewerID string, projectID int64) (model.Evaluation, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.Evaluation, error)
	// Upsert returns ErrNotFound when the project does not exist.
	Upsert(ctx context.Context, input model.EvaluationUpsert) (model.UpsertResult, error)
}

package memory

import (
	"context"

	"granteval-go/internal/model"
	"granteval-go/internal/repositories"
)

type EvaluationRepository struct {
	db *DB
}

func NewEvaluationRepository(db *DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

func (r *EvaluationRepository) GetByReviewerAndProject(_ context.Context, reviewerID string, projectID int64) (model.Evaluation, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	id, ok := r.db.evaluationsKey[evaluationKey{reviewerID: reviewerID, projectID: projectID}]
	if !ok {
		return model.Evaluation{}, repositories.ErrNotFound
	}
	return copyEvaluation(r.db.evaluations[id]), nil
}

func (r *EvaluationRepository) ListByProject(_ context.Context, projectID int64) ([]model.Evaluation, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	evaluations := []model.Evaluation{}
	for _, e := range r.db.evaluations {
		if e.ProjectID == projectID {
			evaluations = append(evaluations, copyEvaluation(e))
		}
	}
	return evaluations, nil
}

func (r *EvaluationRepository) Upsert(_ context.Context, input model.EvaluationUpsert) (model.UpsertResult, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.projects[input.ProjectID]; !ok {
		return model.UpsertResult{}, repositories.ErrNotFound
	}

	now := r.db.now()
	key := evaluationKey{reviewerID: input.ReviewerID, projectID: input.ProjectID}
	if id, ok := r.db.evaluationsKey[key]; ok {
		e := r.db.evaluations[id]
		e.TeamScore = input.TeamScore
		e.IdeaScore = input.IdeaScore
		e.Notes = copyNotes(input.Notes)
		e.UpdatedAt = now
		return model.UpsertResult{ID: id}, nil
	}

	r.db.lastEvalID++
	e := &model.Evaluation{
		ID:         r.db.lastEvalID,
		ReviewerID: input.ReviewerID,
		ProjectID:  input.ProjectID,
		TeamScore:  input.TeamScore,
		IdeaScore:  input.IdeaScore,
		Notes:      copyNotes(input.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.db.evaluations[e.ID] = e
	r.db.evaluationsKey[key] = e.ID
	return model.UpsertResult{ID: e.ID, Created: true}, nil
}

func copyEvaluation(e *model.Evaluation) model.Evaluation {
	out := *e
	out.Notes = copyNotes(e.Notes)
	return out
}

func copyNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	n := *notes
	return &n
}

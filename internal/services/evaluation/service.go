package evaluation

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"granteval-go/internal/auth"
	"granteval-go/internal/events"
	"granteval-go/internal/metrics"
	"granteval-go/internal/model"
	"granteval-go/internal/repositories"
)

type Input struct {
	ProjectID int64
	TeamScore float64
	IdeaScore float64
	Notes     *string
}

type Service struct {
	repo      repositories.EvaluationRepository
	publisher events.Publisher
	logger    *zap.Logger
	validate  *validator.Validate
}

func NewService(repo repositories.EvaluationRepository, publisher events.Publisher, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validate:  newValidator(),
	}
}

// Current returns the calling reviewer's evaluation of a project. An
// anonymous caller simply has none.
func (s *Service) Current(ctx context.Context, projectID int64) (model.Evaluation, bool, error) {
	reviewerID, ok := auth.ReviewerFrom(ctx)
	if !ok {
		return model.Evaluation{}, false, nil
	}

	evaluation, err := s.repo.GetByReviewerAndProject(ctx, reviewerID, projectID)
	if errors.Is(err, repositories.ErrNotFound) {
		return model.Evaluation{}, false, nil
	}
	if err != nil {
		return model.Evaluation{}, false, err
	}
	return evaluation, true, nil
}

// Upsert stores the calling reviewer's scores, replacing any earlier
// submission for the same project.
func (s *Service) Upsert(ctx context.Context, input Input) (int64, error) {
	reviewerID, ok := auth.ReviewerFrom(ctx)
	if !ok {
		return 0, model.ErrUnauthenticated
	}
	if err := s.validateScores(input.TeamScore, input.IdeaScore); err != nil {
		return 0, err
	}

	res, err := s.repo.Upsert(ctx, model.EvaluationUpsert{
		ReviewerID: reviewerID,
		ProjectID:  input.ProjectID,
		TeamScore:  input.TeamScore,
		IdeaScore:  input.IdeaScore,
		Notes:      input.Notes,
	})
	if err != nil {
		return 0, err
	}

	metrics.IncrementEvaluationUpsert(res.Created)
	s.logger.Info("evaluation saved",
		zap.Int64("id", res.ID),
		zap.Int64("projectId", input.ProjectID),
		zap.String("reviewerId", reviewerID),
		zap.Bool("created", res.Created),
	)
	if s.publisher != nil {
		s.publisher.Publish(events.Change{Table: events.TableEvaluations, ProjectID: input.ProjectID})
	}
	return res.ID, nil
}

// AggregateScores averages every reviewer's scores for a project. It is
// recomputed on each call.
func (s *Service) AggregateScores(ctx context.Context, projectID int64) (model.AggregateScores, error) {
	evaluations, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return model.AggregateScores{}, err
	}
	if len(evaluations) == 0 {
		return model.AggregateScores{}, nil
	}

	var teamSum, ideaSum float64
	for _, e := range evaluations {
		teamSum += e.TeamScore
		ideaSum += e.IdeaScore
	}
	n := len(evaluations)
	return model.AggregateScores{
		TeamScore: model.ScoreSummary{Average: teamSum / float64(n), Count: n},
		IdeaScore: model.ScoreSummary{Average: ideaSum / float64(n), Count: n},
	}, nil
}

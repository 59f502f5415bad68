package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"granteval-go/internal/auth"
	"granteval-go/internal/events"
	"granteval-go/internal/model"
	"granteval-go/internal/repositories"
	"granteval-go/internal/repositories/memory"
)

type fixture struct {
	svc       *Service
	repo      *memory.EvaluationRepository
	projectID int64
	hub       *events.Hub
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := memory.NewDB()
	res, err := memory.NewProjectRepository(db).Upsert(context.Background(), model.ProjectUpsert{ExternalID: "ext-1"})
	require.NoError(t, err)
	repo := memory.NewEvaluationRepository(db)
	hub := events.NewHub()
	return fixture{
		svc:       NewService(repo, hub, zap.NewNop()),
		repo:      repo,
		projectID: res.ID,
		hub:       hub,
	}
}

func as(reviewerID string) context.Context {
	return auth.WithReviewer(context.Background(), reviewerID)
}

func strPtr(s string) *string { return &s }

func TestUpsertKeepsOneRecordWithLatestValues(t *testing.T) {
	f := newFixture(t)

	id1, err := f.svc.Upsert(as("alice"), Input{ProjectID: f.projectID, TeamScore: 2, IdeaScore: 3, Notes: strPtr("first")})
	require.NoError(t, err)
	id2, err := f.svc.Upsert(as("alice"), Input{ProjectID: f.projectID, TeamScore: 9.5, IdeaScore: 0})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	all, err := f.repo.ListByProject(context.Background(), f.projectID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 9.5, all[0].TeamScore)
	assert.Equal(t, 0.0, all[0].IdeaScore)
	assert.Nil(t, all[0].Notes)
	assert.Equal(t, "alice", all[0].ReviewerID)
}

func TestUpsertRejectsOutOfRangeScores(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Upsert(as("alice"), Input{ProjectID: f.projectID, TeamScore: 5, IdeaScore: 6, Notes: strPtr("keep")})
	require.NoError(t, err)

	cases := []struct {
		name       string
		team, idea float64
		field      string
	}{
		{"team below", -0.1, 5, "teamScore"},
		{"team above", 10.1, 5, "teamScore"},
		{"idea below", 5, -0.1, "ideaScore"},
		{"idea above", 5, 10.1, "ideaScore"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Upsert(as("alice"), Input{ProjectID: f.projectID, TeamScore: tc.team, IdeaScore: tc.idea})
			var verr *model.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tc.field, verr.Fields[0].Field)

			current, ok, err := f.svc.Current(as("alice"), f.projectID)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 5.0, current.TeamScore)
			assert.Equal(t, 6.0, current.IdeaScore)
			require.NotNil(t, current.Notes)
			assert.Equal(t, "keep", *current.Notes)
		})
	}
}

func TestUpsertAcceptsBounds(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Upsert(as("alice"), Input{ProjectID: f.projectID, TeamScore: 0, IdeaScore: 10})
	assert.NoError(t, err)
}

func TestUpsertRequiresAuthentication(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Upsert(context.Background(), Input{ProjectID: f.projectID, TeamScore: 99, IdeaScore: 5})
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestUpsertUnknownProject(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Upsert(as("alice"), Input{ProjectID: f.projectID + 100, TeamScore: 1, IdeaScore: 1})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpsertPublishesChange(t *testing.T) {
	f := newFixture(t)
	changes, cancel := f.hub.Subscribe(events.Filter{Table: events.TableEvaluations, ProjectID: f.projectID})
	defer cancel()

	_, err := f.svc.Upsert(as("alice"), Input{ProjectID: f.projectID, TeamScore: 1, IdeaScore: 1})
	require.NoError(t, err)
	require.Len(t, changes, 1)
}

func TestCurrent(t *testing.T) {
	f := newFixture(t)

	_, ok, err := f.svc.Current(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.False(t, ok, "anonymous callers have no evaluation")

	_, ok, err = f.svc.Current(as("bob"), f.projectID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.Upsert(as("bob"), Input{ProjectID: f.projectID, TeamScore: 4, IdeaScore: 7})
	require.NoError(t, err)

	got, ok, err := f.svc.Current(as("bob"), f.projectID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7.0, got.IdeaScore)

	_, ok, err = f.svc.Current(as("carol"), f.projectID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAggregateScores(t *testing.T) {
	f := newFixture(t)
	for i, reviewer := range []string{"a", "b", "c"} {
		_, err := f.svc.Upsert(as(reviewer), Input{ProjectID: f.projectID, TeamScore: float64(2 * (i + 1)), IdeaScore: float64(i)})
		require.NoError(t, err)
	}

	agg, err := f.svc.AggregateScores(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, agg.TeamScore.Average)
	assert.Equal(t, 3, agg.TeamScore.Count)
	assert.Equal(t, 1.0, agg.IdeaScore.Average)
	assert.Equal(t, 3, agg.IdeaScore.Count)
}

func TestAggregateScoresWithoutEvaluations(t *testing.T) {
	f := newFixture(t)
	agg, err := f.svc.AggregateScores(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.Equal(t, model.ScoreSummary{Average: 0, Count: 0}, agg.TeamScore)
	assert.Equal(t, model.ScoreSummary{Average: 0, Count: 0}, agg.IdeaScore)
}

func TestAggregateScoresDoesNotRound(t *testing.T) {
	f := newFixture(t)
	for i, reviewer := range []string{"a", "b", "c"} {
		_, err := f.svc.Upsert(as(reviewer), Input{ProjectID: f.projectID, TeamScore: float64(i % 2), IdeaScore: 10})
		require.NoError(t, err)
	}
	agg, err := f.svc.AggregateScores(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, agg.TeamScore.Average, 1e-12)
}

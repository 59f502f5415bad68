package manifund

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"granteval-go/internal/model"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.Client(), zap.NewNop(), WithURL(server.URL), WithClock(func() time.Time { return fixedNow }))
}

func TestFetchAppliesDefaultsAndDerivesAmountRaised(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "p-1", "txns": [{"amount": 100}, {"amount": 250}]},
			{
				"id": "p-2",
				"title": "Open Climate Data",
				"description": "Long **markdown** text",
				"blurb": "Short pitch",
				"creator": "8a1c-uuid",
				"profiles": {"full_name": "Ada Lovelace"},
				"slug": "open-climate-data",
				"funding_goal": 50000,
				"min_funding": 1000,
				"stage": "proposal",
				"type": "cert",
				"created_at": "2024-06-01T12:00:00+00:00",
				"causes": [{"title": "Climate"}, {"title": "Open Data"}],
				"txns": [{"amount": 10.5}, {}, {"amount": null}]
			}
		]`))
	})

	projects, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	first := projects[0]
	assert.Equal(t, "p-1", first.ExternalID)
	assert.Equal(t, 350.0, first.AmountRaised)
	assert.Equal(t, "Untitled Project", first.Title)
	assert.Equal(t, "active", first.Stage)
	assert.Equal(t, "grant", first.Type)
	assert.Equal(t, "Unknown", first.Creator)
	assert.Equal(t, "", first.Description)
	assert.Equal(t, "", first.Slug)
	assert.Equal(t, "", first.Blurb)
	assert.Equal(t, 0.0, first.FundingGoal)
	assert.Equal(t, 0.0, first.MinFunding)
	assert.Equal(t, fixedNow, first.CreatedAt)
	assert.Equal(t, "", first.CausesText())

	second := projects[1]
	assert.Equal(t, "Open Climate Data", second.Title)
	assert.Equal(t, "Long **markdown** text", second.Description)
	assert.Equal(t, "Ada Lovelace", second.Creator)
	assert.Equal(t, "open-climate-data", second.Slug)
	assert.Equal(t, "Short pitch", second.Blurb)
	assert.Equal(t, 50000.0, second.FundingGoal)
	assert.Equal(t, 1000.0, second.MinFunding)
	assert.Equal(t, "proposal", second.Stage)
	assert.Equal(t, "cert", second.Type)
	assert.Equal(t, 10.5, second.AmountRaised)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), second.CreatedAt)
	assert.Equal(t, "Climate, Open Data", second.CausesText())
}

func TestFetchReturnsUpstreamErrorOnBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	projects, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.Nil(t, projects)

	var upstream *model.UpstreamFetchError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
	assert.Equal(t, "HTTP error! status: 503", err.Error())
}

func TestFetchReturnsUpstreamErrorOnUnparseableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"projects": "not an array"`))
	})

	_, err := client.Fetch(context.Background())
	var upstream *model.UpstreamFetchError
	require.True(t, errors.As(err, &upstream))
	assert.Zero(t, upstream.StatusCode)
}

func TestFetchReturnsUpstreamErrorWhenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(http.DefaultClient, zap.NewNop(), WithURL(url))
	_, err := client.Fetch(context.Background())

	var upstream *model.UpstreamFetchError
	require.True(t, errors.As(err, &upstream))
}

func TestParseProject(t *testing.T) {
	t.Run("description falls back to blurb", func(t *testing.T) {
		p := ParseProject(map[string]any{"id": "x", "blurb": "tiny"}, fixedNow)
		assert.Equal(t, "tiny", p.Description)
		assert.Equal(t, "tiny", p.Blurb)
	})

	t.Run("creator falls back to creator field", func(t *testing.T) {
		p := ParseProject(map[string]any{"creator": "Grace"}, fixedNow)
		assert.Equal(t, "Grace", p.Creator)
	})

	t.Run("structured description is kept as json text", func(t *testing.T) {
		p := ParseProject(map[string]any{
			"description": map[string]any{"type": "doc", "content": []any{}},
		}, fixedNow)
		assert.JSONEq(t, `{"type":"doc","content":[]}`, p.Description)
	})

	t.Run("unparseable created_at uses now", func(t *testing.T) {
		p := ParseProject(map[string]any{"created_at": "not a date"}, fixedNow)
		assert.Equal(t, fixedNow, p.CreatedAt)
	})

	t.Run("out of range epoch created_at uses now", func(t *testing.T) {
		for _, raw := range []any{json.Number("1e20"), "-1e20", json.Number("253402300800000")} {
			p := ParseProject(map[string]any{"created_at": raw}, fixedNow)
			assert.Equal(t, fixedNow, p.CreatedAt, "created_at %v", raw)
		}
	})

	t.Run("missing id stays empty", func(t *testing.T) {
		p := ParseProject(map[string]any{"title": "No id"}, fixedNow)
		assert.Empty(t, p.ExternalID)
	})
}

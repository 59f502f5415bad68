package manifund

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"granteval-go/internal/model"
	"granteval-go/internal/providers/common"
)

const (
	DefaultURL = "https://manifund.org/api/v0/projects"

	defaultTitle   = "Untitled Project"
	defaultCreator = "Unknown"
	defaultStage   = "active"
	defaultType    = "grant"

	userAgent = "granteval/1.0"
)

type Client struct {
	client *http.Client
	url    string
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Client)

func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func NewClient(client *http.Client, logger *zap.Logger, options ...Option) *Client {
	c := &Client{
		client: client,
		url:    DefaultURL,
		logger: logger,
		now:    time.Now,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) Source() string {
	return "manifund"
}

// Fetch loads the whole catalog in one request. Any transport, status or
// decoding failure is returned as *model.UpstreamFetchError.
func (c *Client) Fetch(ctx context.Context) ([]model.CatalogProject, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &model.UpstreamFetchError{Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &model.UpstreamFetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &model.UpstreamFetchError{StatusCode: resp.StatusCode}
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	var payload []any
	if err := decoder.Decode(&payload); err != nil {
		return nil, &model.UpstreamFetchError{Err: fmt.Errorf("json parse error: %w", err)}
	}

	now := c.now()
	projects := make([]model.CatalogProject, 0, len(payload))
	for i, item := range payload {
		record, ok := item.(map[string]any)
		if !ok {
			c.logger.Warn("catalog item is not an object", zap.Int("index", i))
			record = map[string]any{}
		}
		projects = append(projects, ParseProject(record, now))
	}

	c.logger.Info("catalog fetched", zap.String("source", c.Source()), zap.Int("items", len(projects)))
	return projects, nil
}

// ParseProject applies the field-level defaults to one raw catalog record.
// It never rejects a record; a missing id is left empty for the caller to
// decide on.
func ParseProject(p map[string]any, now time.Time) model.CatalogProject {
	blurb := common.ToString(p["blurb"])

	createdAt, ok := common.ToTime(p["created_at"])
	if !ok {
		createdAt = now
	}

	return model.CatalogProject{
		ExternalID:   common.ToString(p["id"]),
		Title:        pickString(common.ToString(p["title"]), defaultTitle),
		Description:  pickString(descriptionText(p["description"]), blurb),
		Creator:      pickString(common.ToString(nestedValue(p, "profiles", "full_name")), common.ToString(p["creator"]), defaultCreator),
		Slug:         common.ToString(p["slug"]),
		Blurb:        blurb,
		AmountRaised: sumTransactions(p["txns"]),
		FundingGoal:  common.ToFloat64(p["funding_goal"]),
		MinFunding:   common.ToFloat64(p["min_funding"]),
		Stage:        pickString(common.ToString(p["stage"]), defaultStage),
		Type:         pickString(common.ToString(p["type"]), defaultType),
		CreatedAt:    createdAt,
		Causes:       collectCauses(p["causes"]),
	}
}

func sumTransactions(raw any) float64 {
	items, ok := raw.([]any)
	if !ok {
		return 0
	}

	var total float64
	for _, item := range items {
		txn, ok := item.(map[string]any)
		if !ok {
			continue
		}
		total += common.ToFloat64(txn["amount"])
	}
	return total
}

func collectCauses(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	causes := make([]string, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if title := common.ToString(m["title"]); title != "" {
			causes = append(causes, title)
		}
	}
	return causes
}

// descriptionText keeps string descriptions as-is and re-encodes structured
// (rich-text document) descriptions as JSON text.
func descriptionText(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	default:
		return common.ToString(v)
	}
}

func pickString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nestedValue(root map[string]any, keys ...string) any {
	var current any = root
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

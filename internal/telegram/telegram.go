package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"granteval-go/internal/model"
	"granteval-go/internal/providers/common"
)

const (
	apiBase         = "https://api.telegram.org"
	projectURLBase  = "https://manifund.org/projects/"
	messageLimit    = 4096
	excerptRuneSize = 400
)

// Sender posts new-project alerts to a Telegram chat, one message at a time
// and no faster than minInterval.
type Sender struct {
	token    string
	chat     string
	threadID *int
	apiBase  string

	client       *http.Client
	logger       *zap.Logger
	mu           sync.Mutex
	closed       bool
	queue        chan string
	done         chan struct{}
	minInterval  time.Duration
	lastSentTime time.Time
}

func NewSender(token, chat string, threadID *int, logger *zap.Logger) *Sender {
	s := &Sender{
		token:       token,
		chat:        chat,
		threadID:    threadID,
		apiBase:     apiBase,
		client:      &http.Client{Timeout: 15 * time.Second},
		logger:      logger,
		queue:       make(chan string, 100),
		done:        make(chan struct{}),
		minInterval: 1200 * time.Millisecond,
	}

	go s.worker()
	return s
}

// SendAlert queues the alert; when the queue is full the alert is dropped
// so a large first sync never blocks on Telegram.
func (s *Sender) SendAlert(project model.CatalogProject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	message := formatMessage(project)
	for _, part := range splitMessage(message, messageLimit) {
		select {
		case s.queue <- part:
		default:
			s.logger.Warn("telegram queue full; dropping alert", zap.String("externalId", project.ExternalID))
			return
		}
	}
}

// Close stops accepting alerts and waits for queued ones to be sent.
func (s *Sender) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()
	<-s.done
}

func (s *Sender) worker() {
	defer close(s.done)
	for msg := range s.queue {
		s.sendWithRateLimit(msg)
	}
}

func (s *Sender) sendWithRateLimit(text string) {
	wait := time.Until(s.lastSentTime.Add(s.minInterval))
	if wait > 0 {
		time.Sleep(wait)
	}

	retryAfter, err := s.postMessage(text)
	if err != nil {
		if retryAfter > 0 {
			s.logger.Warn("telegram rate limit hit", zap.Duration("retryAfter", retryAfter))
			time.Sleep(retryAfter)
			if _, retryErr := s.postMessage(text); retryErr != nil {
				s.logger.Error("telegram retry failed", zap.Error(retryErr))
				return
			}
			s.lastSentTime = time.Now()
			return
		}

		s.logger.Error("telegram send error", zap.Error(err))
		return
	}

	s.lastSentTime = time.Now()
	s.logger.Debug("telegram alert sent")
}

func (s *Sender) postMessage(text string) (time.Duration, error) {
	payload := map[string]any{
		"chat_id":                  s.chat,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	if s.threadID != nil {
		payload["message_thread_id"] = *s.threadID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.token), bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var parsed telegramResponse
	_ = json.NewDecoder(resp.Body).Decode(&parsed)

	if resp.StatusCode == http.StatusTooManyRequests && parsed.Parameters.RetryAfter > 0 {
		return time.Duration(parsed.Parameters.RetryAfter) * time.Second, fmt.Errorf("rate limited")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("telegram error: %d %s", resp.StatusCode, parsed.Description)
	}

	return 0, nil
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
	Parameters  struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

func formatMessage(project model.CatalogProject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📢 <b>%s</b>\n", html.EscapeString(project.Title))
	fmt.Fprintf(&b, "👤 %s\n", html.EscapeString(project.Creator))
	fmt.Fprintf(&b, "🏷 %s · %s\n", html.EscapeString(project.Stage), html.EscapeString(project.Type))

	funding := "💰 Raised: " + common.FormatUSD(project.AmountRaised)
	if project.FundingGoal > 0 {
		funding += " of " + common.FormatUSD(project.FundingGoal)
	} else if project.MinFunding > 0 {
		funding += " (minimum " + common.FormatUSD(project.MinFunding) + ")"
	}
	b.WriteString(funding + "\n")

	if causes := project.CausesText(); causes != "" {
		fmt.Fprintf(&b, "🧭 %s\n", html.EscapeString(causes))
	}
	if excerpt := Excerpt(pickText(project.Blurb, documentText(project.Description)), excerptRuneSize); excerpt != "" {
		fmt.Fprintf(&b, "📝 %s\n", html.EscapeString(excerpt))
	}
	fmt.Fprintf(&b, "📅 %s\n", project.CreatedAt.UTC().Format("2006-01-02"))
	if project.Slug != "" {
		fmt.Fprintf(&b, "🔗 %s%s", projectURLBase, project.Slug)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Excerpt strips any HTML markup and collapses whitespace, then cuts the
// text to at most limit runes.
func Excerpt(text string, limit int) string {
	if text == "" {
		return ""
	}
	plain := text
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
		plain = doc.Text()
	}
	plain = strings.Join(strings.Fields(plain), " ")

	runes := []rune(plain)
	if len(runes) <= limit {
		return plain
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// documentText flattens a rich-text document stored as JSON into its text
// nodes. Anything else is returned unchanged; a document with no text yields
// "".
func documentText(description string) string {
	trimmed := strings.TrimSpace(description)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return description
	}
	var doc any
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return description
	}

	var b strings.Builder
	collectText(&b, doc)
	return strings.TrimSpace(b.String())
}

func collectText(b *strings.Builder, node any) {
	switch v := node.(type) {
	case []any:
		for _, child := range v {
			collectText(b, child)
		}
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			b.WriteString(text)
		}
		if content, ok := v["content"]; ok {
			collectText(b, content)
			b.WriteString(" ")
		}
	}
}

func pickText(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func splitMessage(message string, limit int) []string {
	runes := []rune(message)
	if len(runes) <= limit {
		return []string{message}
	}

	parts := []string{}
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}

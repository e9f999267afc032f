package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/newslens/newslens-backend/internal/ai"
	"github.com/newslens/newslens-backend/internal/pkg/cache"
	"github.com/newslens/newslens-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

const summaryPrefix = "summary:"

// SummarizerConfig configures the summarizer
type SummarizerConfig struct {
	ResultTTL        time.Duration
	MaxContentTokens int
}

// Summarizer produces neutral article summaries. On any model failure it
// returns a placeholder marked Degraded rather than an error.
type Summarizer struct {
	completer ai.Completer
	store     cache.Store
	cfg       SummarizerConfig
	logger    *logger.Logger
}

// NewSummarizer creates a summarizer. completer may be nil; every call
// then degrades to the placeholder.
func NewSummarizer(completer ai.Completer, store cache.Store, cfg SummarizerConfig, log *logger.Logger) *Summarizer {
	if cfg.ResultTTL == 0 {
		cfg.ResultTTL = 30 * time.Minute
	}
	if cfg.MaxContentTokens == 0 {
		cfg.MaxContentTokens = 3000
	}
	if log == nil {
		log = logger.L()
	}

	return &Summarizer{
		completer: completer,
		store:     store,
		cfg:       cfg,
		logger:    log.Named("summarizer"),
	}
}

// Summarize returns a summary for the article, cached by content
func (s *Summarizer) Summarize(ctx context.Context, title, content string) *Summary {
	key := summaryPrefix + cache.Fingerprint(title + content)

	if cached, err := s.store.Get(ctx, key); err == nil {
		var result Summary
		if json.Unmarshal([]byte(cached), &result) == nil {
			return &result
		}
	}

	result, err := s.summarize(ctx, title, content)
	if err != nil {
		s.logger.Warn("summarization failed, returning placeholder", zap.Error(err))
		return placeholderSummary(title)
	}

	if data, err := json.Marshal(result); err == nil {
		if err := s.store.Set(ctx, key, string(data), s.cfg.ResultTTL); err != nil {
			s.logger.Warn("failed to cache summary", zap.Error(err))
		}
	}

	return result
}

func (s *Summarizer) summarize(ctx context.Context, title, content string) (*Summary, error) {
	if s.completer == nil {
		return nil, fmt.Errorf("no completer configured")
	}

	truncated := ai.TruncateTokens(content, s.cfg.MaxContentTokens)

	reply, err := s.completer.Complete(ctx, summarySystemPrompt, summaryPrompt(title, truncated))
	if err != nil {
		return nil, err
	}

	doc, ok := ai.ExtractJSON(reply)
	if !ok {
		return nil, fmt.Errorf("summary reply is not JSON")
	}

	text := ai.Field(doc, "summary").String()
	if text == "" {
		return nil, fmt.Errorf("summary reply missing summary text")
	}

	return &Summary{
		Summary:   text,
		KeyPoints: ai.StringSlice(doc, "key_points"),
		WordCount: len(strings.Fields(text)),
	}, nil
}

// placeholderSummary is the fixed degraded fallback
func placeholderSummary(title string) *Summary {
	text := fmt.Sprintf("A summary for %q could not be generated. The full article is available at the source.", title)
	return &Summary{
		Summary:   text,
		KeyPoints: []string{"Summary generation unavailable"},
		WordCount: len(strings.Fields(text)),
		Degraded:  true,
	}
}

package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newslens/newslens-backend/internal/ai"
	"github.com/newslens/newslens-backend/internal/pkg/cache"
)

type scriptStep struct {
	reply string
	err   error
}

// scriptedCompleter replays a fixed sequence of completion results
type scriptedCompleter struct {
	steps   []scriptStep
	calls   int
	prompts []string
}

func (s *scriptedCompleter) Complete(_ context.Context, _, user string) (string, error) {
	s.prompts = append(s.prompts, user)
	if s.calls >= len(s.steps) {
		return "", errors.New("unexpected completion call")
	}
	step := s.steps[s.calls]
	s.calls++
	return step.reply, step.err
}

func newTestAnalyzer(completer *scriptedCompleter) (*Analyzer, *cache.MemoryStore) {
	store := cache.NewMemoryStore(100)
	var c ai.Completer
	if completer != nil {
		c = completer
	}
	return NewAnalyzer(c, store, AnalyzerConfig{
		ResultTTL: time.Minute,
		SourceTTL: time.Minute,
	}, nil), store
}

func TestAnalyzer_ModelTier(t *testing.T) {
	completer := &scriptedCompleter{steps: []scriptStep{
		{reply: `{"bias_score": 35, "bias_label": "Liberal", "confidence": 0.8, "reasoning": "framing favors one side", "key_indicators": ["loaded verbs"]}`},
	}}
	analyzer, store := newTestAnalyzer(completer)
	defer store.Close()

	result := analyzer.Analyze(context.Background(), "Title", "Content", "nytimes")

	require.NotNil(t, result)
	assert.Equal(t, MethodModel, result.AnalysisMethod)
	assert.Equal(t, 35, result.BiasScore)
	assert.Equal(t, "Liberal", result.BiasLabel)
	assert.Equal(t, 0.8, result.Confidence)
	assert.Equal(t, []string{"loaded verbs"}, result.KeyIndicators)
	assert.Equal(t, 1, completer.calls)
}

func TestAnalyzer_ModelResultCached(t *testing.T) {
	completer := &scriptedCompleter{steps: []scriptStep{
		{reply: `{"bias_score": 35, "confidence": 0.8}`},
	}}
	analyzer, store := newTestAnalyzer(completer)
	defer store.Close()
	ctx := context.Background()

	first := analyzer.Analyze(ctx, "Title", "Content", "nytimes")
	second := analyzer.Analyze(ctx, "Title", "Content", "nytimes")

	assert.Equal(t, 1, completer.calls, "second identical article must be served from cache")
	assert.Equal(t, first.BiasScore, second.BiasScore)
	assert.Equal(t, first.AnalysisMethod, second.AnalysisMethod)
}

func TestAnalyzer_FallsBackToSourceReputation(t *testing.T) {
	completer := &scriptedCompleter{steps: []scriptStep{
		{err: errors.New("model overloaded")},
		{reply: `{"bias_score": 70}`},
		{reply: `{"bias_score": 65, "confidence": 0.5, "reasoning": "judged against outlet lean"}`},
	}}
	analyzer, store := newTestAnalyzer(completer)
	defer store.Close()

	result := analyzer.Analyze(context.Background(), "Title", "Content", "foxnews")

	assert.Equal(t, MethodSourceReputation, result.AnalysisMethod)
	assert.Equal(t, 65, result.BiasScore)
	assert.Equal(t, 3, completer.calls, "content attempt, reputation lookup, adjusted judgment")
}

func TestAnalyzer_SourceReputationCachedPerOutlet(t *testing.T) {
	completer := &scriptedCompleter{steps: []scriptStep{
		// First article: content tier fails, then the reputation pair.
		{err: errors.New("model overloaded")},
		{reply: `{"bias_score": 70}`},
		{reply: `{"bias_score": 65, "confidence": 0.5}`},
		// Second article from the same outlet: content tier fails again,
		// but the reputation lookup must come from the cache.
		{err: errors.New("model overloaded")},
		{reply: `{"bias_score": 60, "confidence": 0.5}`},
	}}
	analyzer, store := newTestAnalyzer(completer)
	defer store.Close()
	ctx := context.Background()

	analyzer.Analyze(ctx, "First Title", "First content", "foxnews")
	result := analyzer.Analyze(ctx, "Second Title", "Second content", "foxnews")

	assert.Equal(t, MethodSourceReputation, result.AnalysisMethod)
	assert.Equal(t, 5, completer.calls)
}

func TestAnalyzer_FallsBackToHeuristic(t *testing.T) {
	completer := &scriptedCompleter{steps: []scriptStep{
		{err: errors.New("model down")},
		{err: errors.New("model down")},
	}}
	analyzer, store := newTestAnalyzer(completer)
	defer store.Close()

	result := analyzer.Analyze(context.Background(), "Border Security Bill Passes", "The bill funds border security.", "foxnews")

	assert.Equal(t, MethodKeywordHeuristic, result.AnalysisMethod)
	assert.Equal(t, 2, completer.calls)
}

func TestAnalyzer_HeuristicResultNotCached(t *testing.T) {
	completer := &scriptedCompleter{steps: []scriptStep{
		{err: errors.New("model down")},
		{err: errors.New("model down")},
		// Model is back for the repeated request.
		{reply: `{"bias_score": 55, "confidence": 0.6}`},
	}}
	analyzer, store := newTestAnalyzer(completer)
	defer store.Close()
	ctx := context.Background()

	first := analyzer.Analyze(ctx, "Title", "Content", "")
	assert.Equal(t, MethodKeywordHeuristic, first.AnalysisMethod)

	second := analyzer.Analyze(ctx, "Title", "Content", "")
	assert.Equal(t, MethodModel, second.AnalysisMethod, "a recovered model must get another chance")
}

func TestAnalyzer_NilCompleterUsesHeuristic(t *testing.T) {
	analyzer, store := newTestAnalyzer(nil)
	defer store.Close()

	result := analyzer.Analyze(context.Background(), "Any Title", "Any content.", "")

	assert.Equal(t, MethodKeywordHeuristic, result.AnalysisMethod)
}

func TestAnalyzer_ClampsModelOutput(t *testing.T) {
	completer := &scriptedCompleter{steps: []scriptStep{
		{reply: `{"bias_score": 150, "confidence": 1.7}`},
	}}
	analyzer, store := newTestAnalyzer(completer)
	defer store.Close()

	result := analyzer.Analyze(context.Background(), "Title", "Content", "")

	assert.Equal(t, 100, result.BiasScore)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, LabelHighlyConservative, result.BiasLabel, "label backfilled from the clamped score")
}

func TestAnalyzer_RejectsReplyWithoutScore(t *testing.T) {
	completer := &scriptedCompleter{steps: []scriptStep{
		{reply: `{"bias_label": "Neutral/Centrist"}`},
		{err: errors.New("model down")},
	}}
	analyzer, store := newTestAnalyzer(completer)
	defer store.Close()

	result := analyzer.Analyze(context.Background(), "Title", "Content", "unknown-outlet")

	assert.Equal(t, MethodKeywordHeuristic, result.AnalysisMethod)
}

func TestAnalyzer_EmptySourceSkipsReputationTier(t *testing.T) {
	completer := &scriptedCompleter{steps: []scriptStep{
		{err: errors.New("model down")},
	}}
	analyzer, store := newTestAnalyzer(completer)
	defer store.Close()

	result := analyzer.Analyze(context.Background(), "Title", "Content", "")

	assert.Equal(t, MethodKeywordHeuristic, result.AnalysisMethod)
	assert.Equal(t, 1, completer.calls, "no reputation lookup without a source")
}

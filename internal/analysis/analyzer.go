package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/newslens/newslens-backend/internal/ai"
	"github.com/newslens/newslens-backend/internal/pkg/cache"
	"github.com/newslens/newslens-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

const (
	biasContentPrefix = "bias:content:"
	biasSourcePrefix  = "bias:source:"
)

// AnalyzerConfig configures the bias analyzer
type AnalyzerConfig struct {
	ResultTTL        time.Duration // per-article results
	SourceTTL        time.Duration // source-level estimates
	MaxContentTokens int
}

// Analyzer classifies article bias through an ordered fallback chain:
// direct model analysis, then source-reputation analysis, then the
// keyword heuristic. The heuristic cannot fail, so Analyze never does.
type Analyzer struct {
	completer ai.Completer
	store     cache.Store
	cfg       AnalyzerConfig
	logger    *logger.Logger
}

// NewAnalyzer creates an analyzer. completer may be nil, in which case
// only the heuristic tier runs.
func NewAnalyzer(completer ai.Completer, store cache.Store, cfg AnalyzerConfig, log *logger.Logger) *Analyzer {
	if cfg.ResultTTL == 0 {
		cfg.ResultTTL = 30 * time.Minute
	}
	if cfg.SourceTTL == 0 {
		cfg.SourceTTL = 24 * time.Hour
	}
	if cfg.MaxContentTokens == 0 {
		cfg.MaxContentTokens = 3000
	}
	if log == nil {
		log = logger.L()
	}

	return &Analyzer{
		completer: completer,
		store:     store,
		cfg:       cfg,
		logger:    log.Named("analyzer"),
	}
}

// Analyze classifies one article. The returned analysis always has
// score in [0,100] and confidence in [0,1], whichever tier produced it.
func (a *Analyzer) Analyze(ctx context.Context, title, content, source string) *BiasAnalysis {
	contentKey := biasContentPrefix + cache.Fingerprint(title+content)

	if cached, err := a.store.Get(ctx, contentKey); err == nil {
		var result BiasAnalysis
		if json.Unmarshal([]byte(cached), &result) == nil {
			return result.normalize()
		}
	}

	truncated := ai.TruncateTokens(content, a.cfg.MaxContentTokens)

	if a.completer != nil {
		if result, err := a.analyzeContent(ctx, title, truncated); err == nil {
			a.cacheResult(ctx, contentKey, result)
			return result
		} else {
			a.logger.Warn("content analysis failed, trying source reputation",
				zap.String("source", source), zap.Error(err))
		}

		if result, err := a.analyzeBySource(ctx, title, truncated, source); err == nil {
			a.cacheResult(ctx, contentKey, result)
			return result
		} else {
			a.logger.Warn("source reputation analysis failed, using keyword heuristic",
				zap.String("source", source), zap.Error(err))
		}
	}

	// Heuristic results are cheap and deterministic; left uncached so a
	// recovered model gets another chance on the next request.
	return Heuristic(title, content, source)
}

// analyzeContent is the first tier: one completion over the article text
func (a *Analyzer) analyzeContent(ctx context.Context, title, content string) (*BiasAnalysis, error) {
	reply, err := a.completer.Complete(ctx, biasSystemPrompt, contentAnalysisPrompt(title, content))
	if err != nil {
		return nil, err
	}

	result, err := parseBias(reply)
	if err != nil {
		return nil, err
	}

	result.AnalysisMethod = MethodModel
	return result.normalize(), nil
}

// analyzeBySource is the second tier: estimate the outlet's overall lean
// (cached per host), then re-judge the article against that estimate.
// The two calls are sequential because the second consumes the first.
func (a *Analyzer) analyzeBySource(ctx context.Context, title, content, source string) (*BiasAnalysis, error) {
	if source == "" {
		return nil, fmt.Errorf("no source to analyze")
	}

	sourceScore, err := a.sourceReputation(ctx, source)
	if err != nil {
		return nil, err
	}

	reply, err := a.completer.Complete(ctx, biasSystemPrompt,
		sourceAdjustedPrompt(title, content, source, sourceScore))
	if err != nil {
		return nil, err
	}

	result, err := parseBias(reply)
	if err != nil {
		return nil, err
	}

	result.AnalysisMethod = MethodSourceReputation
	return result.normalize(), nil
}

// sourceReputation returns the outlet-level score, cached for SourceTTL
func (a *Analyzer) sourceReputation(ctx context.Context, source string) (int, error) {
	key := biasSourcePrefix + source

	if cached, err := a.store.Get(ctx, key); err == nil {
		var score int
		if json.Unmarshal([]byte(cached), &score) == nil {
			return score, nil
		}
	}

	reply, err := a.completer.Complete(ctx, biasSystemPrompt, sourceReputationPrompt(source))
	if err != nil {
		return 0, err
	}

	doc, ok := ai.ExtractJSON(reply)
	if !ok {
		return 0, fmt.Errorf("source reputation reply is not JSON")
	}

	field := ai.Field(doc, "bias_score")
	if !field.Exists() {
		return 0, fmt.Errorf("source reputation reply missing bias_score")
	}

	score := ClampScore(int(field.Int()))

	if data, err := json.Marshal(score); err == nil {
		if err := a.store.Set(ctx, key, string(data), a.cfg.SourceTTL); err != nil {
			a.logger.Warn("failed to cache source reputation", zap.String("source", source), zap.Error(err))
		}
	}

	return score, nil
}

func (a *Analyzer) cacheResult(ctx context.Context, key string, result *BiasAnalysis) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := a.store.Set(ctx, key, string(data), a.cfg.ResultTTL); err != nil {
		a.logger.Warn("failed to cache bias analysis", zap.Error(err))
	}
}

// parseBias reads a model reply into a BiasAnalysis
func parseBias(reply string) (*BiasAnalysis, error) {
	doc, ok := ai.ExtractJSON(reply)
	if !ok {
		return nil, fmt.Errorf("reply is not JSON")
	}

	score := ai.Field(doc, "bias_score")
	if !score.Exists() {
		return nil, fmt.Errorf("reply missing bias_score")
	}

	return &BiasAnalysis{
		BiasScore:     int(score.Int()),
		BiasLabel:     ai.Field(doc, "bias_label").String(),
		Confidence:    ai.Field(doc, "confidence").Float(),
		Reasoning:     ai.Field(doc, "reasoning").String(),
		KeyIndicators: ai.StringSlice(doc, "key_indicators"),
	}, nil
}

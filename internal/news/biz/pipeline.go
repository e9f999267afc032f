package biz

import (
	"context"
	"time"

	"github.com/newslens/newslens-backend/internal/analysis"
	"github.com/newslens/newslens-backend/internal/news/types"
	"github.com/newslens/newslens-backend/internal/pkg/logger"
	"github.com/newslens/newslens-backend/internal/pkg/workerpool"
	"go.uber.org/zap"
)

// Pipeline enriches articles with bias analysis and summaries. Every
// provider call runs as its own task on the shared worker pool, so the
// pool size bounds in-flight LLM calls, not articles.
type Pipeline struct {
	analyzer   *analysis.Analyzer
	summarizer *analysis.Summarizer
	pool       *workerpool.Pool
	logger     *logger.Logger
}

// NewPipeline creates a pipeline
func NewPipeline(analyzer *analysis.Analyzer, summarizer *analysis.Summarizer, pool *workerpool.Pool, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.L()
	}

	return &Pipeline{
		analyzer:   analyzer,
		summarizer: summarizer,
		pool:       pool,
		logger:     log.Named("pipeline"),
	}
}

// Process enriches a batch, preserving input order. Analysis and
// summarization of one article are independent stages, so the batch
// fans out into two pool tasks per article.
func (p *Pipeline) Process(ctx context.Context, articles []types.Article) []types.ProcessedArticle {
	biases := make([]*analysis.BiasAnalysis, len(articles))
	summaries := make([]*analysis.Summary, len(articles))

	runStage := func(ctx context.Context, j int) {
		article := articles[j/2]
		if j%2 == 0 {
			biases[j/2] = p.analyzer.Analyze(ctx, article.Title, article.Content, article.Source)
		} else {
			summaries[j/2] = p.summarizer.Summarize(ctx, article.Title, article.Content)
		}
	}

	if err := p.pool.Each(ctx, 2*len(articles), runStage); err != nil {
		// Pool rejected the batch (shutdown); degrade inline instead.
		p.logger.Warn("worker pool unavailable, processing batch serially", zap.Error(err))
		for j := 0; j < 2*len(articles); j++ {
			runStage(ctx, j)
		}
	}

	processed := make([]types.ProcessedArticle, len(articles))
	now := time.Now()
	for i, article := range articles {
		processed[i] = types.ProcessedArticle{
			Article:     article,
			Bias:        biases[i],
			Summary:     summaries[i],
			ProcessedAt: now,
		}
	}
	return processed
}

// ProcessOne enriches a single article through the same pool-bounded path
func (p *Pipeline) ProcessOne(ctx context.Context, article types.Article) types.ProcessedArticle {
	return p.Process(ctx, []types.Article{article})[0]
}

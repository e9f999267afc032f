package biz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/newslens/newslens-backend/internal/news/types"
	"github.com/newslens/newslens-backend/internal/pkg/cache"
	apperrors "github.com/newslens/newslens-backend/internal/pkg/errors"
	"github.com/newslens/newslens-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

const searchCachePrefix = "news:search:"

// UseCaseConfig configures the news use case
type UseCaseConfig struct {
	MaxLimit     int
	DefaultLimit int
	ResultTTL    time.Duration
}

// NewsUseCase orchestrates retrieval and processing behind the HTTP
// surface. Whole processed feeds are cached so a repeated query within
// the TTL is answered without touching any provider.
type NewsUseCase struct {
	retriever *Retriever
	pipeline  *Pipeline
	store     cache.Store
	cfg       UseCaseConfig
	logger    *logger.Logger
}

// NewNewsUseCase creates the use case
func NewNewsUseCase(retriever *Retriever, pipeline *Pipeline, store cache.Store, cfg UseCaseConfig, log *logger.Logger) *NewsUseCase {
	if cfg.MaxLimit == 0 {
		cfg.MaxLimit = 20
	}
	if cfg.DefaultLimit == 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.ResultTTL == 0 {
		cfg.ResultTTL = 30 * time.Minute
	}
	if log == nil {
		log = logger.L()
	}

	return &NewsUseCase{
		retriever: retriever,
		pipeline:  pipeline,
		store:     store,
		cfg:       cfg,
		logger:    log.Named("news"),
	}
}

// Search validates, then serves a processed feed from the cache or the
// retrieval+processing pipeline. Validation failures return before any
// cache or provider access.
func (uc *NewsUseCase) Search(ctx context.Context, query string, limit int) (*types.Feed, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.New(apperrors.ErrNewsQueryRequired)
	}
	if limit <= 0 {
		limit = uc.cfg.DefaultLimit
	}
	if limit > uc.cfg.MaxLimit {
		return nil, apperrors.New(apperrors.ErrNewsLimitExceeded,
			fmt.Sprintf("limit must be at most %d", uc.cfg.MaxLimit))
	}

	key := searchCachePrefix + cache.Fingerprint(fmt.Sprintf("%s|%d", strings.ToLower(query), limit))

	if cached, err := uc.store.Get(ctx, key); err == nil {
		var feed types.Feed
		if json.Unmarshal([]byte(cached), &feed) == nil {
			uc.logger.Debug("search cache hit", zap.String("query", query))
			return &feed, nil
		}
	}

	articles, origin, message, err := uc.retriever.Fetch(ctx, query, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrNewsSearchFailed)
	}

	feed := &types.Feed{
		Articles:  uc.pipeline.Process(ctx, articles),
		Query:     query,
		Total:     len(articles),
		Timestamp: time.Now(),
		Origin:    origin,
		Message:   message,
	}

	// Sample feeds are not cached: they stand in for a provider outage,
	// and caching one would pin synthetic articles on the query long
	// after the provider recovers.
	if origin != types.OriginSample {
		if data, err := json.Marshal(feed); err == nil {
			if err := uc.store.Set(ctx, key, string(data), uc.cfg.ResultTTL); err != nil {
				uc.logger.Warn("failed to cache search feed", zap.Error(err))
			}
		}
	}

	return feed, nil
}

// Analyze scores and summarizes caller-supplied article text
func (uc *NewsUseCase) Analyze(ctx context.Context, req *types.AnalyzeRequest) (*types.ProcessedArticle, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.New(apperrors.ErrInvalidParams, "title and content are required")
	}

	source := req.Source
	if source == "" && req.URL != "" {
		source = sourceFromURL(req.URL)
	}

	article := types.Article{
		Title:       req.Title,
		Content:     req.Content,
		Source:      source,
		URL:         req.URL,
		PublishedAt: time.Now(),
		ImageURL:    types.PlaceholderImageURL,
	}

	processed := uc.pipeline.ProcessOne(ctx, article)
	return &processed, nil
}

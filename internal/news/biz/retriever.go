package biz

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/newslens/newslens-backend/internal/news/types"
	"github.com/newslens/newslens-backend/internal/pkg/logger"
	searchtypes "github.com/newslens/newslens-backend/internal/search/types"
	"go.uber.org/zap"
)

// Searcher is the provider capability the retriever consumes
type Searcher interface {
	Search(ctx context.Context, req *searchtypes.SearchRequest) (*searchtypes.SearchResponse, error)
}

// Domain pools for balanced retrieval. One search per pool, plus one
// unrestricted search, so a single query cannot return a feed skewed to
// whichever outlets rank best for it.
var (
	liberalPool = []string{
		"cnn.com", "msnbc.com", "nytimes.com",
		"theguardian.com", "huffpost.com", "vox.com",
	}
	conservativePool = []string{
		"foxnews.com", "nypost.com", "dailywire.com",
		"washingtonexaminer.com", "nationalreview.com", "breitbart.com",
	}
	centerPool = []string{
		"reuters.com", "apnews.com", "bbc.com",
		"axios.com", "thehill.com", "usatoday.com",
	}
)

const (
	poolWindow  = 7 * 24 * time.Hour  // scoped pools: recent week
	mixedWindow = 14 * 24 * time.Hour // unrestricted search reaches further back
)

// RetrieverConfig configures article retrieval
type RetrieverConfig struct {
	SearchTimeout  time.Duration
	SampleFallback bool
}

// Retriever fetches and normalizes articles from the search provider
type Retriever struct {
	searcher Searcher
	cfg      RetrieverConfig
	logger   *logger.Logger
}

// NewRetriever creates a retriever
func NewRetriever(searcher Searcher, cfg RetrieverConfig, log *logger.Logger) *Retriever {
	if cfg.SearchTimeout == 0 {
		cfg.SearchTimeout = 10 * time.Second
	}
	if log == nil {
		log = logger.L()
	}

	return &Retriever{
		searcher: searcher,
		cfg:      cfg,
		logger:   log.Named("retriever"),
	}
}

// Fetch runs the four pool searches in parallel, merges and de-duplicates
// the hits, and returns up to limit normalized articles. On total failure
// it returns the sample set (origin "sample") when the fallback is
// enabled, otherwise the error.
func (r *Retriever) Fetch(ctx context.Context, query string, limit int) ([]types.Article, string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.SearchTimeout)
	defer cancel()

	pools := []struct {
		name    string
		domains []string
		window  time.Duration
	}{
		{"liberal", liberalPool, poolWindow},
		{"conservative", conservativePool, poolWindow},
		{"center", centerPool, poolWindow},
		{"mixed", nil, mixedWindow},
	}

	responses := make([]*searchtypes.SearchResponse, len(pools))
	errs := make([]error, len(pools))

	var wg sync.WaitGroup
	for i, pool := range pools {
		i, pool := i, pool
		wg.Add(1)
		go func() {
			defer wg.Done()
			responses[i], errs[i] = r.searcher.Search(ctx, &searchtypes.SearchRequest{
				Query:          query,
				MaxResults:     limit,
				IncludeDomains: pool.domains,
				TimeRange: &searchtypes.TimeRange{
					Start: time.Now().Add(-pool.window).Format(time.RFC3339),
				},
			})
		}()
	}
	wg.Wait()

	var articles []types.Article
	seen := make(map[string]bool)
	failures := 0

	for i, resp := range responses {
		if errs[i] != nil {
			failures++
			r.logger.Warn("pool search failed",
				zap.String("pool", pools[i].name),
				zap.Error(errs[i]))
			continue
		}
		for _, hit := range resp.Results {
			if hit.URL == "" || seen[hit.URL] {
				continue
			}
			seen[hit.URL] = true
			articles = append(articles, normalizeHit(hit))
		}
	}

	// The sample set only masks provider failure. A search where every
	// pool succeeded but matched nothing is a legitimate empty feed.
	if failures == len(pools) {
		if r.cfg.SampleFallback {
			r.logger.Warn("all pool searches failed, serving sample articles",
				zap.String("query", query), zap.Int("failures", failures))
			return sampleArticles(), types.OriginSample,
				"Live search is unavailable; showing sample articles.", nil
		}
		return nil, "", "", errs[0]
	}

	if len(articles) > limit {
		articles = articles[:limit]
	}

	return articles, types.OriginLive, "", nil
}

// normalizeHit converts a provider hit into an Article
func normalizeHit(hit *searchtypes.SearchResult) types.Article {
	imageURL := hit.ImageURL
	if imageURL == "" {
		imageURL = types.PlaceholderImageURL
	}

	publishedAt := time.Now()
	if hit.PublishedAt != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, hit.PublishedAt); err == nil {
				publishedAt = t
				break
			}
		}
	}

	return types.Article{
		Title:       hit.Title,
		Content:     hit.Content,
		Source:      sourceFromURL(hit.URL),
		URL:         hit.URL,
		PublishedAt: publishedAt,
		Author:      hit.Author,
		ImageURL:    imageURL,
	}
}

// sourceFromURL extracts a bare outlet name from an article URL:
// "https://www.reuters.com/world/..." becomes "reuters".
func sourceFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	if idx := strings.LastIndex(host, "."); idx > 0 {
		host = host[:idx]
	}
	return host
}

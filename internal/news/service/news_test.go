package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newslens/newslens-backend/internal/analysis"
	"github.com/newslens/newslens-backend/internal/news/biz"
	"github.com/newslens/newslens-backend/internal/news/types"
	"github.com/newslens/newslens-backend/internal/pkg/cache"
	"github.com/newslens/newslens-backend/internal/pkg/workerpool"
	searchtypes "github.com/newslens/newslens-backend/internal/search/types"
)

// stubSearcher returns a fixed response or error for every pool search
type stubSearcher struct {
	results []*searchtypes.SearchResult
	err     error
}

func (s *stubSearcher) Search(context.Context, *searchtypes.SearchRequest) (*searchtypes.SearchResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &searchtypes.SearchResponse{Results: s.results}, nil
}

func newTestRouter(t *testing.T, searcher biz.Searcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cache.NewMemoryStore(100)
	t.Cleanup(store.Close)

	pool, err := workerpool.New(4, nil)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	analyzer := analysis.NewAnalyzer(nil, store, analysis.AnalyzerConfig{}, nil)
	summarizer := analysis.NewSummarizer(nil, store, analysis.SummarizerConfig{}, nil)
	pipeline := biz.NewPipeline(analyzer, summarizer, pool, nil)
	retriever := biz.NewRetriever(searcher, biz.RetrieverConfig{SampleFallback: true}, nil)
	uc := biz.NewNewsUseCase(retriever, pipeline, store, biz.UseCaseConfig{
		MaxLimit:     20,
		DefaultLimit: 10,
		ResultTTL:    time.Minute,
	}, nil)

	router := gin.New()
	api := router.Group("/api")
	NewNewsService(uc, nil).RegisterRoutes(api)
	return router
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSearchEndpoint_Success(t *testing.T) {
	router := newTestRouter(t, &stubSearcher{results: []*searchtypes.SearchResult{
		{Title: "Headline", URL: "https://www.reuters.com/a", Content: "Body."},
	}})

	w := doRequest(router, http.MethodGet, "/api/news/search?query=election&limit=5", "")

	require.Equal(t, http.StatusOK, w.Code)

	var feed types.Feed
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Equal(t, "election", feed.Query)
	assert.Equal(t, types.OriginLive, feed.Origin)
	require.Len(t, feed.Articles, 1)
	assert.Equal(t, "reuters", feed.Articles[0].Source)
	require.NotNil(t, feed.Articles[0].Bias)
	require.NotNil(t, feed.Articles[0].Summary)
}

func TestSearchEndpoint_MissingQuery(t *testing.T) {
	router := newTestRouter(t, &stubSearcher{})

	w := doRequest(router, http.MethodGet, "/api/news/search", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body["error"])
	assert.NotEmpty(t, body["message"])
}

func TestSearchEndpoint_LimitTooLarge(t *testing.T) {
	router := newTestRouter(t, &stubSearcher{})

	w := doRequest(router, http.MethodGet, "/api/news/search?query=election&limit=21", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body["error"])
}

func TestSearchEndpoint_NonIntegerLimit(t *testing.T) {
	router := newTestRouter(t, &stubSearcher{})

	w := doRequest(router, http.MethodGet, "/api/news/search?query=election&limit=ten", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body["error"])
	assert.Contains(t, body["message"], "integer")
}

func TestSearchEndpoint_SampleFallback(t *testing.T) {
	router := newTestRouter(t, &stubSearcher{err: errors.New("provider unreachable")})

	w := doRequest(router, http.MethodGet, "/api/news/search?query=election", "")

	require.Equal(t, http.StatusOK, w.Code, "provider failure is masked with samples")

	var feed types.Feed
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Equal(t, types.OriginSample, feed.Origin)
	assert.NotEmpty(t, feed.Message)
	assert.Len(t, feed.Articles, 5)
}

func TestAnalyzeEndpoint_Success(t *testing.T) {
	router := newTestRouter(t, &stubSearcher{})

	w := doRequest(router, http.MethodPost, "/api/news/analyze",
		`{"title": "Border Security Bill Passes", "content": "The bill funds border security.", "source": "foxnews"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var processed types.ProcessedArticle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &processed))
	require.NotNil(t, processed.Bias)
	assert.Equal(t, analysis.MethodKeywordHeuristic, processed.Bias.AnalysisMethod)
	require.NotNil(t, processed.Summary)
}

func TestAnalyzeEndpoint_MissingFields(t *testing.T) {
	router := newTestRouter(t, &stubSearcher{})

	w := doRequest(router, http.MethodPost, "/api/news/analyze", `{"title": "Only a title"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body["error"])
}

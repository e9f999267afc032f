package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/newslens/newslens-backend/internal/search/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseProvider_BuildDefaultHeaders(t *testing.T) {
	p := NewBaseProvider(&types.ProviderConfig{
		ID:      types.ProviderExa,
		APIHost: "https://api.exa.ai",
		APIKey:  "test-key",
	})

	headers := p.BuildDefaultHeaders()
	assert.Equal(t, "application/json", headers["Content-Type"])
	assert.NotEmpty(t, headers["User-Agent"])
}

func TestBaseProvider_Validate(t *testing.T) {
	valid := NewBaseProvider(&types.ProviderConfig{
		ID:      types.ProviderExa,
		APIHost: "https://api.exa.ai",
		APIKey:  "test-key",
	})
	assert.NoError(t, valid.Validate())

	missing := NewBaseProvider(&types.ProviderConfig{
		ID:      types.ProviderExa,
		APIHost: "https://api.exa.ai",
	})
	assert.ErrorIs(t, missing.Validate(), types.ErrMissingAPIKey)
}

func TestExaProvider_Search(t *testing.T) {
	var gotBody exaRequest
	var gotAPIKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		gotAPIKey = r.Header.Get("x-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"title":         "Headline",
					"url":           "https://www.reuters.com/a",
					"text":          "Full article text.",
					"score":         0.92,
					"publishedDate": "2026-08-27T10:30:00Z",
					"author":        "A. Reporter",
					"image":         "https://img.example.com/a.jpg",
				},
			},
		})
	}))
	defer server.Close()

	provider, err := NewExaProvider(&types.ProviderConfig{
		ID:      types.ProviderExa,
		APIHost: server.URL,
		APIKey:  "secret",
	})
	require.NoError(t, err)

	resp, err := provider.Search(context.Background(), &types.SearchRequest{
		Query:          "election",
		MaxResults:     5,
		IncludeDomains: []string{"reuters.com"},
		TimeRange:      &types.TimeRange{Start: "2026-08-20T00:00:00Z"},
	})
	require.NoError(t, err)

	// Request mapping
	assert.Equal(t, "secret", gotAPIKey)
	assert.Equal(t, "election", gotBody.Query)
	assert.Equal(t, 5, gotBody.NumResults)
	assert.Equal(t, "neural", gotBody.Type)
	assert.Equal(t, []string{"reuters.com"}, gotBody.IncludeDomains)
	assert.Equal(t, "2026-08-20T00:00:00Z", gotBody.StartPublishedDate)
	assert.Equal(t, map[string]interface{}{"text": true}, gotBody.Contents)

	// Response mapping
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Headline", resp.Results[0].Title)
	assert.Equal(t, "Full article text.", resp.Results[0].Content)
	assert.Equal(t, "2026-08-27T10:30:00Z", resp.Results[0].PublishedAt)
	assert.Equal(t, "https://img.example.com/a.jpg", resp.Results[0].ImageURL)
	assert.Equal(t, types.ProviderExa, resp.Provider)
}

func TestExaProvider_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider, err := NewExaProvider(&types.ProviderConfig{
		ID:      types.ProviderExa,
		APIHost: server.URL,
		APIKey:  "secret",
	})
	require.NoError(t, err)

	_, err = provider.Search(context.Background(), &types.SearchRequest{Query: "election"})
	require.Error(t, err)

	var provErr *types.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, types.ProviderExa, provErr.Provider)
	assert.Equal(t, "HTTP_429", provErr.Code)
}

func TestTavilyProvider_Search(t *testing.T) {
	var gotBody tavilyRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"title":       "Headline",
					"url":         "https://example.com/a",
					"content":     "Snippet.",
					"raw_content": "Full article text.",
					"score":       0.8,
				},
			},
			"images": []string{"https://img.example.com/a.jpg"},
		})
	}))
	defer server.Close()

	provider, err := NewTavilyProvider(&types.ProviderConfig{
		ID:      types.ProviderTavily,
		APIHost: server.URL,
		APIKey:  "secret",
	})
	require.NoError(t, err)

	start := time.Now().Add(-7 * 24 * time.Hour).Format(time.RFC3339)
	resp, err := provider.Search(context.Background(), &types.SearchRequest{
		Query:     "election",
		TimeRange: &types.TimeRange{Start: start},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "news", gotBody.Topic)
	assert.True(t, gotBody.IncludeRawContent)
	assert.Equal(t, 8, gotBody.Days, "seven full days back rounds up to eight")

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Full article text.", resp.Results[0].Content, "raw content preferred over snippet")
	assert.Equal(t, "https://img.example.com/a.jpg", resp.Results[0].ImageURL)
}

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/newslens/newslens-backend/internal/search/types"
)

// TavilyProvider implements the Tavily search API
type TavilyProvider struct {
	*BaseProvider
}

// NewTavilyProvider creates a new Tavily provider
func NewTavilyProvider(config *types.ProviderConfig) (Provider, error) {
	return &TavilyProvider{BaseProvider: NewBaseProvider(config)}, nil
}

type tavilyRequest struct {
	Query             string   `json:"query"`
	Topic             string   `json:"topic,omitempty"`
	SearchDepth       string   `json:"search_depth,omitempty"`
	MaxResults        int      `json:"max_results,omitempty"`
	IncludeDomains    []string `json:"include_domains,omitempty"`
	ExcludeDomains    []string `json:"exclude_domains,omitempty"`
	IncludeRawContent bool     `json:"include_raw_content,omitempty"`
	IncludeImages     bool     `json:"include_images,omitempty"`
	Days              int      `json:"days,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		RawContent    string  `json:"raw_content,omitempty"`
		Score         float32 `json:"score"`
		PublishedDate string  `json:"published_date,omitempty"`
	} `json:"results"`
	Images []string `json:"images,omitempty"`
	Query  string   `json:"query"`
}

// Search executes a search query using the Tavily API
func (p *TavilyProvider) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	startTime := time.Now()

	tavilyReq := tavilyRequest{
		Query:             req.Query,
		Topic:             "news",
		SearchDepth:       "basic",
		MaxResults:        req.MaxResults,
		IncludeDomains:    req.IncludeDomains,
		ExcludeDomains:    req.ExcludeDomains,
		IncludeRawContent: true,
		IncludeImages:     true,
	}

	if tavilyReq.MaxResults == 0 {
		tavilyReq.MaxResults = 10
	}

	// Tavily filters recency by day count rather than a date range
	if req.TimeRange != nil && req.TimeRange.Start != "" {
		if start, err := time.Parse(time.RFC3339, req.TimeRange.Start); err == nil {
			days := int(time.Since(start).Hours()/24) + 1
			if days > 0 {
				tavilyReq.Days = days
			}
		}
	}

	reqBody, err := json.Marshal(tavilyReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/search", p.config.APIHost)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range p.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.GetAPIKey()))

	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, &types.ProviderError{
			Provider: p.GetID(),
			Code:     "REQUEST_FAILED",
			Message:  "Failed to execute request",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &types.ProviderError{
			Provider: p.GetID(),
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  string(body),
		}
	}

	var tavilyResp tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tavilyResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]*types.SearchResult, len(tavilyResp.Results))
	for i, r := range tavilyResp.Results {
		content := r.RawContent
		if content == "" {
			content = r.Content
		}

		imageURL := ""
		if i < len(tavilyResp.Images) {
			imageURL = tavilyResp.Images[i]
		}

		results[i] = &types.SearchResult{
			Title:       r.Title,
			URL:         r.URL,
			Content:     content,
			Score:       r.Score,
			PublishedAt: r.PublishedDate,
			ImageURL:    imageURL,
		}
	}

	return &types.SearchResponse{
		Query:      req.Query,
		Results:    results,
		TotalCount: len(results),
		Took:       time.Since(startTime).Milliseconds(),
		Provider:   p.GetID(),
	}, nil
}

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

// ExaProvider implements the Exa neural search API
type ExaProvider struct {
	*BaseProvider
}

// NewExaProvider creates a new Exa provider
func NewExaProvider(config *types.ProviderConfig) (Provider, error) {
	return &ExaProvider{BaseProvider: NewBaseProvider(config)}, nil
}

type exaRequest struct {
	Query              string                 `json:"query"`
	NumResults         int                    `json:"numResults,omitempty"`
	IncludeDomains     []string               `json:"includeDomains,omitempty"`
	ExcludeDomains     []string               `json:"excludeDomains,omitempty"`
	StartPublishedDate string                 `json:"startPublishedDate,omitempty"`
	EndPublishedDate   string                 `json:"endPublishedDate,omitempty"`
	UseAutoprompt      bool                   `json:"useAutoprompt,omitempty"`
	Type               string                 `json:"type,omitempty"` // "neural", "keyword", or "auto"
	Contents           map[string]interface{} `json:"contents,omitempty"`
}

type exaResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Text          string  `json:"text,omitempty"`
		Score         float32 `json:"score"`
		PublishedDate string  `json:"publishedDate,omitempty"`
		Author        string  `json:"author,omitempty"`
		Image         string  `json:"image,omitempty"`
	} `json:"results"`
}

// Search executes a search query using the Exa API
func (p *ExaProvider) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	startTime := time.Now()

	exaReq := exaRequest{
		Query:          req.Query,
		NumResults:     req.MaxResults,
		IncludeDomains: req.IncludeDomains,
		ExcludeDomains: req.ExcludeDomains,
		UseAutoprompt:  true,
		Type:           "neural",
		Contents: map[string]interface{}{
			"text": true,
		},
	}

	if exaReq.NumResults == 0 {
		exaReq.NumResults = 10
	}

	if req.TimeRange != nil {
		exaReq.StartPublishedDate = req.TimeRange.Start
		exaReq.EndPublishedDate = req.TimeRange.End
	}

	reqBody, err := json.Marshal(exaReq)
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
	httpReq.Header.Set("x-api-key", p.GetAPIKey())

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

	var exaResp exaResponse
	if err := json.NewDecoder(resp.Body).Decode(&exaResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]*types.SearchResult, len(exaResp.Results))
	for i, r := range exaResp.Results {
		results[i] = &types.SearchResult{
			Title:       r.Title,
			URL:         r.URL,
			Content:     r.Text,
			Score:       r.Score,
			PublishedAt: r.PublishedDate,
			Author:      r.Author,
			ImageURL:    r.Image,
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

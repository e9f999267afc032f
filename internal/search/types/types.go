package types

// SearchRequest represents an article search request
type SearchRequest struct {
	Query          string   `json:"query"`
	MaxResults     int      `json:"max_results,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
	TimeRange      *TimeRange `json:"time_range,omitempty"`
}

// TimeRange restricts results by publication date
type TimeRange struct {
	Start string `json:"start,omitempty"` // ISO 8601
	End   string `json:"end,omitempty"`   // ISO 8601
}

// SearchResponse represents a normalized provider response
type SearchResponse struct {
	Query      string          `json:"query"`
	Results    []*SearchResult `json:"results"`
	TotalCount int             `json:"total_count,omitempty"`
	Took       int64           `json:"took"` // milliseconds
	Provider   ProviderID      `json:"provider"`
}

// SearchResult represents a single hit with article text
type SearchResult struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Content     string  `json:"content"`
	Score       float32 `json:"score,omitempty"`
	PublishedAt string  `json:"published_at,omitempty"`
	Author      string  `json:"author,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

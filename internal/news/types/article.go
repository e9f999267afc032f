package types

import (
	"time"

	"github.com/newslens/newslens-backend/internal/analysis"
)

// Feed origins. A feed is live when it came from the search provider
// and sample when provider failure was masked with fixed demo articles.
// Cached feeds replay with the origin they were stored with.
const (
	OriginLive   = "live"
	OriginSample = "sample"
)

// PlaceholderImageURL is used when a result carries no image
const PlaceholderImageURL = "https://placehold.co/600x400?text=News"

// Article is a normalized search hit. Immutable once fetched.
type Article struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Source      string    `json:"source"` // bare domain, e.g. "reuters"
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	Author      string    `json:"author,omitempty"`
	ImageURL    string    `json:"image_url"`
}

// ProcessedArticle is an article with its bias analysis and summary
type ProcessedArticle struct {
	Article
	Bias        *analysis.BiasAnalysis `json:"bias"`
	Summary     *analysis.Summary      `json:"summary"`
	ProcessedAt time.Time              `json:"processed_at"`
}

// Feed is the search endpoint payload
type Feed struct {
	Articles  []ProcessedArticle `json:"articles"`
	Query     string             `json:"query"`
	Total     int                `json:"total"`
	Timestamp time.Time          `json:"timestamp"`
	Origin    string             `json:"origin"`
	Message   string             `json:"message,omitempty"`
}

// AnalyzeRequest carries caller-supplied article text for the analyze
// endpoint
type AnalyzeRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Source  string `json:"source"`
	URL     string `json:"url"`
}

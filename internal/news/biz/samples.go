package biz

import (
	"time"

	"github.com/newslens/newslens-backend/internal/news/types"
)

// sampleArticles returns the fixed demo set served when live retrieval
// fails and the sample fallback is enabled. Callers can tell it apart
// from live data by the feed's origin tag.
func sampleArticles() []types.Article {
	now := time.Now()

	return []types.Article{
		{
			Title:       "Congress Debates New Infrastructure Spending Package",
			Content:     "Lawmakers from both parties met this week to negotiate the scope of a proposed infrastructure bill. Supporters argue the investment is overdue for roads, bridges and broadband, while critics question the price tag and how the spending would be financed. A committee vote is expected within the month.",
			Source:      "example-wire",
			URL:         "https://news.example.com/articles/infrastructure-debate",
			PublishedAt: now.Add(-6 * time.Hour),
			ImageURL:    types.PlaceholderImageURL,
		},
		{
			Title:       "Federal Reserve Holds Interest Rates Steady",
			Content:     "The central bank left its benchmark rate unchanged, citing mixed signals in recent inflation and employment data. Officials signaled they want more evidence that price growth is cooling before considering cuts. Markets were largely flat on the announcement.",
			Source:      "example-wire",
			URL:         "https://news.example.com/articles/fed-rates-steady",
			PublishedAt: now.Add(-12 * time.Hour),
			ImageURL:    types.PlaceholderImageURL,
		},
		{
			Title:       "States Split on New Energy Grid Standards",
			Content:     "A coalition of states announced plans to adopt stricter reliability standards for their power grids, while several others said the rules would raise costs without clear benefits. Utility regulators expect months of hearings before any standard takes effect.",
			Source:      "example-wire",
			URL:         "https://news.example.com/articles/energy-grid-standards",
			PublishedAt: now.Add(-18 * time.Hour),
			ImageURL:    types.PlaceholderImageURL,
		},
		{
			Title:       "Supreme Court Agrees to Hear Data Privacy Case",
			Content:     "The court will review a dispute over how much location data law enforcement may obtain without a warrant. Civil liberties groups and industry associations have both filed briefs, and a decision is expected next term.",
			Source:      "example-wire",
			URL:         "https://news.example.com/articles/scotus-privacy-case",
			PublishedAt: now.Add(-24 * time.Hour),
			ImageURL:    types.PlaceholderImageURL,
		},
		{
			Title:       "Local School Districts Pilot Four-Day Week",
			Content:     "A handful of districts began piloting a four-day school week this fall, citing teacher retention and budget pressure. Early parent surveys show mixed reactions, and researchers say it will take at least a year to measure effects on learning.",
			Source:      "example-wire",
			URL:         "https://news.example.com/articles/four-day-school-week",
			PublishedAt: now.Add(-36 * time.Hour),
			ImageURL:    types.PlaceholderImageURL,
		},
	}
}

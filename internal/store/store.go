// Package store defines storage interfaces for the fixture data the mock
// backend serves: news headlines, options flow, and risk metrics.
package store

import (
	"context"

	"tradevision/internal/domain"
)

// FixtureStore persists and retrieves the backend's static datasets.
type FixtureStore interface {
	// ListNews returns all news items in insertion order.
	ListNews(ctx context.Context) ([]domain.NewsItem, error)

	// ListOptionsFlow returns all options-flow entries in insertion order.
	ListOptionsFlow(ctx context.Context) ([]domain.OptionFlowEntry, error)

	// RiskMetrics returns the current risk metrics.
	RiskMetrics(ctx context.Context) (domain.RiskMetrics, error)
}

// DefaultNews is the headline set seeded into an empty store.
var DefaultNews = []domain.NewsItem{
	{Title: "Federal Reserve Signals Rate Pause", Sentiment: 75.5, Source: "Reuters"},
	{Title: "Tech Earnings Beat Expectations", Sentiment: 82.3, Source: "Bloomberg"},
	{Title: "Oil Prices Rise on Supply Concerns", Sentiment: 65.8, Source: "CNBC"},
}

// DefaultOptionsFlow is the options activity seeded into an empty store.
var DefaultOptionsFlow = []domain.OptionFlowEntry{
	{Symbol: "AAPL", OptionType: domain.OptionCall, Volume: 15420, Strike: 175, Unusual: true},
	{Symbol: "MSFT", OptionType: domain.OptionPut, Volume: 8750, Strike: 340, Unusual: false},
	{Symbol: "TSLA", OptionType: domain.OptionCall, Volume: 25600, Strike: 250, Unusual: true},
}

// DefaultRiskMetrics is the risk row seeded into an empty store.
var DefaultRiskMetrics = domain.RiskMetrics{
	VaR95:       2.5,
	SharpeRatio: 1.8,
	Beta:        1.2,
	MaxDrawdown: 8.5,
	Correlation: 0.65,
}

// Package domain defines the core types shared across tradevision: quotes,
// news, options flow, risk metrics, and the synthetic intraday series.
package domain

import (
	"strings"
	"time"
)

// DefaultSymbols is the instrument set offered by the dashboards. The fetch
// path itself accepts any symbol.
var DefaultSymbols = []string{"AAPL", "MSFT", "GOOGL", "TSLA"}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ---------------------------------------------------------------------------
// Quote
// ---------------------------------------------------------------------------

// Quote is the current price/change snapshot for a ticker symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
}

// ---------------------------------------------------------------------------
// News
// ---------------------------------------------------------------------------

// NewsItem is a headline with an externally computed sentiment score in
// [0, 100].
type NewsItem struct {
	Title     string  `json:"title"`
	Source    string  `json:"source"`
	Sentiment float64 `json:"sentiment"`
}

// ---------------------------------------------------------------------------
// Options flow
// ---------------------------------------------------------------------------

// OptionType is the contract side of an options-flow entry.
type OptionType string

const (
	OptionCall OptionType = "call"
	OptionPut  OptionType = "put"
)

// OptionFlowEntry records options-contract trading activity. Unusual is set
// by an upstream heuristic.
type OptionFlowEntry struct {
	Symbol     string     `json:"symbol"`
	OptionType OptionType `json:"option_type"`
	Volume     int64      `json:"volume"`
	Strike     float64    `json:"strike"`
	Unusual    bool       `json:"unusual"`
}

// ---------------------------------------------------------------------------
// Risk
// ---------------------------------------------------------------------------

// RiskMetrics holds portfolio risk figures supplied by the backend. None of
// them are computed locally.
type RiskMetrics struct {
	VaR95       float64 `json:"var_95"`
	SharpeRatio float64 `json:"sharpe_ratio"`
	Beta        float64 `json:"beta"`
	MaxDrawdown float64 `json:"max_drawdown"`
	Correlation float64 `json:"correlation"`
}

// ---------------------------------------------------------------------------
// Synthetic series
// ---------------------------------------------------------------------------

// SyntheticPoint is one hourly sample of a generated intraday series.
type SyntheticPoint struct {
	Time   string  `json:"time"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// Series is a generated intraday price/volume series. Synthetic is true for
// every series produced by the random-walk generator; renderers must label
// such data as simulated.
type Series struct {
	Points      []SyntheticPoint `json:"points"`
	Seed        float64          `json:"seed"`
	Synthetic   bool             `json:"synthetic"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// ---------------------------------------------------------------------------
// Recommendations
// ---------------------------------------------------------------------------

// Signal is the action suggested by a recommendation card.
type Signal string

const (
	SignalBuy  Signal = "buy"
	SignalSell Signal = "sell"
	SignalHold Signal = "hold"
)

// Recommendation is a static advisory card.
type Recommendation struct {
	Signal Signal `json:"signal"`
	Symbol string `json:"symbol"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

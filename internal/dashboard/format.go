package dashboard

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"tradevision/internal/domain"
)

// FormatPrice formats a price as "$X.XX".
func FormatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

// ChangePercent returns change relative to price in percent, or 0 when the
// price is zero.
func ChangePercent(price, change float64) float64 {
	if price == 0 {
		return 0
	}
	return change / price * 100
}

// FormatChange renders the change row: "+3.00 (2.00%)" for gains and
// "-3.00 (-2.00%)" for losses. A zero change counts as a gain.
func FormatChange(price, change float64) string {
	sign := ""
	if change >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f (%.2f%%)", sign, change, ChangePercent(price, change))
}

// IsGain reports whether change should be rendered with the gain styling.
func IsGain(change float64) bool {
	return change >= 0
}

// SentimentLevel buckets a news sentiment score.
type SentimentLevel int

const (
	SentimentNegative SentimentLevel = iota // < 40, red
	SentimentNeutral                        // >= 40, amber
	SentimentPositive                       // >= 70, green
)

// ClassifySentiment maps a 0-100 score to its display level.
func ClassifySentiment(score float64) SentimentLevel {
	switch {
	case score >= 70:
		return SentimentPositive
	case score >= 40:
		return SentimentNeutral
	default:
		return SentimentNegative
	}
}

// String returns the CSS-ish colour name of the level.
func (l SentimentLevel) String() string {
	switch l {
	case SentimentPositive:
		return "green"
	case SentimentNeutral:
		return "amber"
	default:
		return "red"
	}
}

// Hex returns the display colour of the level.
func (l SentimentLevel) Hex() string {
	switch l {
	case SentimentPositive:
		return "#22c55e"
	case SentimentNeutral:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

// FormatNumber prints v with the fewest digits that round-trip, e.g. 75.5
// or 175.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatSentiment formats a sentiment score as "75.5%".
func FormatSentiment(score float64) string {
	return FormatNumber(score) + "%"
}

// FormatVolume formats a volume with comma separators.
func FormatVolume(v int64) string {
	return humanize.Comma(v)
}

// FormatStrike formats an option strike as "$175".
func FormatStrike(strike float64) string {
	return "$" + FormatNumber(strike)
}

// StatusBadge returns the options-flow status label.
func StatusBadge(unusual bool) string {
	if unusual {
		return "Unusual"
	}
	return "Normal"
}

// IsCall reports whether an entry should be rendered with call styling.
func IsCall(t domain.OptionType) bool {
	return t == domain.OptionCall
}

// RiskRow is one labelled line of the risk metrics card.
type RiskRow struct {
	Label string
	Value string
	Tone  string // "red", "green" or ""
}

// RiskRows lays out the risk metrics card. A nil m renders placeholders.
func RiskRows(m *domain.RiskMetrics) []RiskRow {
	if m == nil {
		return []RiskRow{
			{Label: "VaR (95%)", Value: "-", Tone: "red"},
			{Label: "Sharpe Ratio", Value: "-", Tone: "green"},
			{Label: "Beta", Value: "-"},
			{Label: "Max Drawdown", Value: "-", Tone: "red"},
		}
	}
	return []RiskRow{
		{Label: "VaR (95%)", Value: FormatNumber(m.VaR95) + "%", Tone: "red"},
		{Label: "Sharpe Ratio", Value: FormatNumber(m.SharpeRatio), Tone: "green"},
		{Label: "Beta", Value: FormatNumber(m.Beta)},
		{Label: "Max Drawdown", Value: FormatNumber(m.MaxDrawdown) + "%", Tone: "red"},
	}
}

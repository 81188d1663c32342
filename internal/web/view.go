package web

import (
	"slices"
	"time"

	"tradevision/internal/dashboard"
)

// BoardView is the template model derived from a dashboard snapshot.
type BoardView struct {
	Symbol          string
	Symbols         []string
	APIBase         string
	HasQuote        bool
	Price           string
	Change          string
	Gain            bool
	Risk            []dashboard.RiskRow
	Synthetic       bool
	PriceChart      LineChart
	VolumeChart     BarChart
	News            []NewsRow
	Options         []OptionRow
	Recommendations []RecommendationCard
	Updated         string
}

// NewsRow is one rendered headline.
type NewsRow struct {
	Title     string
	Source    string
	Sentiment string
	Level     string
}

// OptionRow is one rendered options-flow line.
type OptionRow struct {
	Symbol  string
	Type    string
	Call    bool
	Volume  string
	Strike  string
	Unusual bool
	Badge   string
}

// RecommendationCard is one rendered advisory card.
type RecommendationCard struct {
	Class  string
	Label  string
	Symbol string
	Target string
	Reason string
}

// NewBoardView maps snap onto the template model.
func NewBoardView(snap dashboard.Snapshot, symbols []string, apiBase string) BoardView {
	v := BoardView{
		Symbol:      snap.Symbol,
		Symbols:     symbols,
		APIBase:     apiBase,
		Risk:        dashboard.RiskRows(snap.Risk),
		Synthetic:   snap.Series.Synthetic,
		PriceChart:  NewLineChart(snap.Series.Points),
		VolumeChart: NewBarChart(snap.Series.Points),
	}
	if snap.Symbol != "" && !slices.Contains(symbols, snap.Symbol) {
		v.Symbols = append(append([]string{}, symbols...), snap.Symbol)
	}

	if q := snap.Quote; q != nil {
		v.HasQuote = true
		v.Price = dashboard.FormatPrice(q.Price)
		v.Change = dashboard.FormatChange(q.Price, q.Change)
		v.Gain = dashboard.IsGain(q.Change)
	}

	for _, n := range snap.News {
		v.News = append(v.News, NewsRow{
			Title:     n.Title,
			Source:    n.Source,
			Sentiment: dashboard.FormatSentiment(n.Sentiment),
			Level:     dashboard.ClassifySentiment(n.Sentiment).String(),
		})
	}

	for _, o := range snap.OptionsFlow {
		v.Options = append(v.Options, OptionRow{
			Symbol:  o.Symbol,
			Type:    string(o.OptionType),
			Call:    dashboard.IsCall(o.OptionType),
			Volume:  dashboard.FormatVolume(o.Volume),
			Strike:  dashboard.FormatStrike(o.Strike),
			Unusual: o.Unusual,
			Badge:   dashboard.StatusBadge(o.Unusual),
		})
	}

	for _, r := range snap.Recommendations {
		v.Recommendations = append(v.Recommendations, RecommendationCard{
			Class:  string(r.Signal),
			Label:  dashboard.SignalLabel(r.Signal),
			Symbol: r.Symbol,
			Target: r.Target,
			Reason: r.Reason,
		})
	}

	if !snap.UpdatedAt.IsZero() {
		v.Updated = snap.UpdatedAt.Format(time.TimeOnly)
	}
	return v
}


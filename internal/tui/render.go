package tui

import (
	"fmt"
	"strings"

	"tradevision/internal/dashboard"
	"tradevision/internal/domain"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Render lays out a full dashboard for snap. It has no side effects; the
// model feeds its output into the viewport.
func Render(snap dashboard.Snapshot, symbols []string, apiBase string, width int) string {
	var b strings.Builder

	renderTabs(&b, snap.Symbol, symbols)
	b.WriteString("\n")
	renderOverview(&b, snap)
	b.WriteString("\n")
	renderRisk(&b, snap.Risk)
	b.WriteString("\n")
	renderCharts(&b, snap.Series, width)
	b.WriteString("\n")
	renderNews(&b, snap.News, width)
	b.WriteString("\n")
	renderOptions(&b, snap.OptionsFlow)
	b.WriteString("\n")
	renderRecommendations(&b, snap.Recommendations)
	b.WriteString("\n")

	footer := "Connected to API at " + apiBase
	if !snap.UpdatedAt.IsZero() {
		footer += "  updated " + snap.UpdatedAt.Format("15:04:05")
	}
	b.WriteString(dimStyle.Render(footer))
	b.WriteString("\n")
	return b.String()
}

func renderTabs(b *strings.Builder, selected string, symbols []string) {
	b.WriteString(titleStyle.Render("TradeVision"))
	b.WriteString("  ")
	for i, sym := range symbols {
		label := fmt.Sprintf(" %d %s ", i+1, sym)
		if sym == selected {
			b.WriteString(tabActiveStyle.Render(label))
		} else {
			b.WriteString(tabStyle.Render(label))
		}
	}
	b.WriteString("\n")
}

func renderOverview(b *strings.Builder, snap dashboard.Snapshot) {
	b.WriteString(sectionStyle.Render("Stock Overview  " + snap.Symbol))
	b.WriteString("\n")
	q := snap.Quote
	if q == nil {
		b.WriteString(dimStyle.Render("  waiting for quote..."))
		b.WriteString("\n")
		return
	}
	b.WriteString("  ")
	b.WriteString(priceStyle.Render(dashboard.FormatPrice(q.Price)))
	b.WriteString("  ")
	if dashboard.IsGain(q.Change) {
		b.WriteString(gainStyle.Render("▲ " + dashboard.FormatChange(q.Price, q.Change)))
	} else {
		b.WriteString(lossStyle.Render("▼ " + dashboard.FormatChange(q.Price, q.Change)))
	}
	if q.Volume > 0 {
		b.WriteString(dimStyle.Render("  vol " + dashboard.FormatVolume(q.Volume)))
	}
	b.WriteString("\n")
}

func renderRisk(b *strings.Builder, m *domain.RiskMetrics) {
	b.WriteString(sectionStyle.Render("Risk Metrics"))
	b.WriteString("\n")
	for _, row := range dashboard.RiskRows(m) {
		fmt.Fprintf(b, "  %-14s %s\n", row.Label, toneStyle(row.Tone).Render(row.Value))
	}
}

func renderCharts(b *strings.Builder, s domain.Series, width int) {
	label := ""
	if s.Synthetic {
		label = "  " + simulatedStyle.Render("(simulated)")
	}
	b.WriteString(sectionStyle.Render("Price Movement (24H)") + label)
	b.WriteString("\n")
	if len(s.Points) == 0 {
		b.WriteString(dimStyle.Render("  no data"))
		b.WriteString("\n")
		return
	}

	prices := make([]float64, len(s.Points))
	volumes := make([]float64, len(s.Points))
	lo, hi := s.Points[0].Price, s.Points[0].Price
	for i, p := range s.Points {
		prices[i] = p.Price
		volumes[i] = float64(p.Volume)
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}

	// Each point gets two cells when the terminal is wide enough.
	cell := 1
	if width >= 2*len(s.Points)+20 {
		cell = 2
	}
	fmt.Fprintf(b, "  %s  %s - %s\n",
		sparkStyle.Render(widen(sparkline(prices), cell)),
		dashboard.FormatPrice(lo), dashboard.FormatPrice(hi))
	fmt.Fprintf(b, "  %s\n", dimStyle.Render(axis(s.Points, cell)))

	b.WriteString(sectionStyle.Render("Volume Analysis") + label)
	b.WriteString("\n")
	fmt.Fprintf(b, "  %s\n", volumeStyle.Render(widen(bars(volumes), cell)))
}

// sparkline maps values onto eight block heights between their min and max.
// A flat series renders at mid height.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	top := len(sparkRunes) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		idx := top / 2
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(top))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}

// bars maps values onto block heights from zero to their max.
func bars(values []float64) string {
	var hi float64
	for _, v := range values {
		hi = max(hi, v)
	}
	top := len(sparkRunes) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if hi > 0 {
			idx = int(v / hi * float64(top))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}

func widen(s string, cell int) string {
	if cell <= 1 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		b.WriteString(strings.Repeat(string(r), cell))
	}
	return b.String()
}

// axis places hour labels under the chart: every fourth point on wide
// charts, every eighth on narrow ones so labels never touch.
func axis(pts []domain.SyntheticPoint, cell int) string {
	stride := 8
	if cell >= 2 {
		stride = 4
	}
	line := []rune(strings.Repeat(" ", len(pts)*cell))
	for i := 0; i < len(pts); i += stride {
		pos := i * cell
		for j, r := range pts[i].Time {
			if pos+j < len(line) {
				line[pos+j] = r
			}
		}
	}
	return strings.TrimRight(string(line), " ")
}

func renderNews(b *strings.Builder, items []domain.NewsItem, width int) {
	b.WriteString(sectionStyle.Render("News Sentiment Analysis"))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  no headlines"))
		b.WriteString("\n")
		return
	}
	titleWidth := max(width-30, 20)
	for _, n := range items {
		level := dashboard.ClassifySentiment(n.Sentiment)
		fmt.Fprintf(b, "  %s %s  %s\n",
			padOrTrunc(n.Title, titleWidth),
			dimStyle.Render(padOrTrunc(n.Source, 12)),
			toneStyle(level.String()).Render(dashboard.FormatSentiment(n.Sentiment)))
	}
}

func renderOptions(b *strings.Builder, entries []domain.OptionFlowEntry) {
	b.WriteString(sectionStyle.Render("Unusual Options Activity"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-6s %-5s %10s %8s  %s", "Symbol", "Type", "Volume", "Strike", "Status")))
	b.WriteString("\n")
	for _, o := range entries {
		typ := lossStyle
		if dashboard.IsCall(o.OptionType) {
			typ = gainStyle
		}
		badge := normalStyle.Render(dashboard.StatusBadge(o.Unusual))
		if o.Unusual {
			badge = unusualStyle.Render(dashboard.StatusBadge(o.Unusual))
		}
		fmt.Fprintf(b, "  %-6s %s %10s %8s  %s\n",
			o.Symbol,
			typ.Render(fmt.Sprintf("%-5s", o.OptionType)),
			dashboard.FormatVolume(o.Volume),
			dashboard.FormatStrike(o.Strike),
			badge)
	}
}

func renderRecommendations(b *strings.Builder, recs []domain.Recommendation) {
	b.WriteString(sectionStyle.Render("AI Trading Recommendations"))
	b.WriteString("\n")
	for _, r := range recs {
		style := neutralStyle
		switch r.Signal {
		case domain.SignalBuy:
			style = gainStyle
		case domain.SignalSell:
			style = lossStyle
		}
		fmt.Fprintf(b, "  %s %-5s %-22s %s\n",
			style.Render(fmt.Sprintf("%-11s", dashboard.SignalLabel(r.Signal))),
			r.Symbol, r.Target, dimStyle.Render(r.Reason))
	}
}

func padOrTrunc(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

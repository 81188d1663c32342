package web

import (
	"fmt"
	"strings"

	"tradevision/internal/domain"
)

const (
	chartWidth  = 600.0
	chartHeight = 200.0
)

// LineChart is an SVG polyline over the synthetic price series.
type LineChart struct {
	Points   string // "x,y x,y ..."
	Min, Max float64
	Labels   []AxisLabel
}

// BarChart is a set of SVG rects over the synthetic volume series.
type BarChart struct {
	Bars   []Bar
	Max    int64
	Labels []AxisLabel
}

// Bar is one rect of a BarChart.
type Bar struct {
	X, Y, W, H float64
	Title      string
}

// AxisLabel positions an x-axis tick label.
type AxisLabel struct {
	X    float64
	Text string
}

func axisLabels(pts []domain.SyntheticPoint, step float64, offset float64) []AxisLabel {
	var labels []AxisLabel
	for i := 0; i < len(pts); i += 4 {
		labels = append(labels, AxisLabel{X: offset + float64(i)*step, Text: pts[i].Time})
	}
	return labels
}

// NewLineChart scales pts into the chart box. A flat series is drawn across
// the vertical middle.
func NewLineChart(pts []domain.SyntheticPoint) LineChart {
	if len(pts) == 0 {
		return LineChart{}
	}
	lo, hi := pts[0].Price, pts[0].Price
	for _, p := range pts {
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}

	step := 0.0
	if len(pts) > 1 {
		step = chartWidth / float64(len(pts)-1)
	}

	var b strings.Builder
	for i, p := range pts {
		y := chartHeight / 2
		if hi > lo {
			y = chartHeight - (p.Price-lo)/(hi-lo)*chartHeight
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", float64(i)*step, y)
	}

	return LineChart{
		Points: b.String(),
		Min:    lo,
		Max:    hi,
		Labels: axisLabels(pts, step, 0),
	}
}

// NewBarChart scales volumes into the chart box.
func NewBarChart(pts []domain.SyntheticPoint) BarChart {
	if len(pts) == 0 {
		return BarChart{}
	}
	var hi int64
	for _, p := range pts {
		hi = max(hi, p.Volume)
	}

	slot := chartWidth / float64(len(pts))
	bars := make([]Bar, len(pts))
	for i, p := range pts {
		h := 0.0
		if hi > 0 {
			h = float64(p.Volume) / float64(hi) * chartHeight
		}
		bars[i] = Bar{
			X:     float64(i)*slot + 1,
			Y:     chartHeight - h,
			W:     slot - 2,
			H:     h,
			Title: fmt.Sprintf("%s: %d", p.Time, p.Volume),
		}
	}
	return BarChart{Bars: bars, Max: hi, Labels: axisLabels(pts, slot, slot/2)}
}

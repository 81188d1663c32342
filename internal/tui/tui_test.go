package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tradevision/internal/dashboard"
	"tradevision/internal/domain"
	"tradevision/internal/series"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSelector struct {
	mu      sync.Mutex
	board   *dashboard.Board
	symbols []string
}

func (f *fakeSelector) Select(_ context.Context, symbol string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.symbols = append(f.symbols, symbol)
	f.board.SetSymbol(symbol)
}

func (f *fakeSelector) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.symbols...)
}

func fullSnapshot() dashboard.Snapshot {
	b := dashboard.NewBoard("AAPL")
	q := domain.Quote{Symbol: "AAPL", Price: 150, Change: 3, Volume: 1234567}
	b.SetQuote("AAPL", q, series.NewGenerator(nil).Generate(q.Price))
	b.SetNews([]domain.NewsItem{{Title: "Fed pauses", Source: "Reuters", Sentiment: 75.5}})
	b.SetOptionsFlow([]domain.OptionFlowEntry{
		{Symbol: "AAPL", OptionType: domain.OptionCall, Volume: 15420, Strike: 175, Unusual: true},
		{Symbol: "MSFT", OptionType: domain.OptionPut, Volume: 8750, Strike: 340},
	})
	b.SetRiskMetrics(domain.RiskMetrics{VaR95: 2.5, SharpeRatio: 1.8, Beta: 1.2, MaxDrawdown: 8.5})
	b.MarkCycle("c1", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC))
	return b.Snapshot()
}

func TestRenderFullBoard(t *testing.T) {
	out := Render(fullSnapshot(), domain.DefaultSymbols, "http://localhost:8000", 100)
	for _, want := range []string{
		"TradeVision",
		"$150.00",
		"+3.00 (2.00%)",
		"1,234,567",
		"VaR (95%)",
		"2.5%",
		"(simulated)",
		"Fed pauses",
		"75.5%",
		"15,420",
		"$175",
		"Unusual",
		"Normal",
		"BUY SIGNAL",
		"SELL SIGNAL",
		"Range: $340-$360",
		"Connected to API at http://localhost:8000",
		"10:00:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestRenderEmptyBoard(t *testing.T) {
	out := Render(dashboard.NewBoard("TSLA").Snapshot(), domain.DefaultSymbols, "http://x", 80)
	if !strings.Contains(out, "waiting for quote") {
		t.Error("expected quote placeholder")
	}
	if strings.Contains(out, "(simulated)") {
		t.Error("empty series should not be labelled simulated")
	}
	if !strings.Contains(out, "no headlines") {
		t.Error("expected news placeholder")
	}
}

func TestRenderLoss(t *testing.T) {
	snap := fullSnapshot()
	snap.Quote.Change = -3
	out := Render(snap, domain.DefaultSymbols, "", 80)
	if !strings.Contains(out, "▼ -3.00 (-2.00%)") {
		t.Error("loss row not rendered")
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline([]float64{1, 2, 3}); got != "▁▄█" {
		t.Errorf("sparkline = %q", got)
	}
	if got := sparkline([]float64{5, 5}); got != "▄▄" {
		t.Errorf("flat sparkline = %q", got)
	}
	if got := bars([]float64{0, 50, 100}); got != "▁▄█" {
		t.Errorf("bars = %q", got)
	}
	if got := widen("▁█", 2); got != "▁▁██" {
		t.Errorf("widen = %q", got)
	}
}

func TestAxisLabels(t *testing.T) {
	pts := make([]domain.SyntheticPoint, 8)
	for i := range pts {
		pts[i].Time = series.HourLabel(i)
	}
	if got := axis(pts, 2); got != "0:00    4:00" {
		t.Errorf("axis = %q", got)
	}
	if got := axis(pts, 1); got != "0:00" {
		t.Errorf("narrow axis = %q", got)
	}
}

func newModel(t *testing.T) (Model, *dashboard.Board, *fakeSelector) {
	t.Helper()
	b := dashboard.NewBoard("AAPL")
	sel := &fakeSelector{board: b}
	m := New(context.Background(), b, sel, domain.DefaultSymbols, "http://localhost:8000", discard)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), b, sel
}

func press(m Model, k tea.KeyMsg) Model {
	next, _ := m.Update(k)
	return next.(Model)
}

func TestKeysSwitchSymbol(t *testing.T) {
	m, _, sel := newModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m = press(m, tea.KeyMsg{Type: tea.KeyRight}) // wraps to the first symbol
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})  // wraps to the last symbol

	want := []string{"MSFT", "GOOGL", "MSFT", "TSLA", "AAPL", "TSLA"}
	got := sel.calls()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("selections = %v, want %v", got, want)
	}
	if m.snap.Symbol != "TSLA" {
		t.Errorf("model symbol = %q, want TSLA", m.snap.Symbol)
	}
}

func TestKeySameSymbolIgnored(t *testing.T) {
	m, _, sel := newModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
	if got := sel.calls(); len(got) != 0 {
		t.Errorf("unexpected selections %v", got)
	}
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	// The subscription is closed, so a pending wait returns no message.
	if msg := waitForSnapshot(m.updates)(); msg != nil {
		t.Errorf("expected nil after unsubscribe, got %T", msg)
	}
}

func TestSnapshotRedraws(t *testing.T) {
	m, b, _ := newModel(t)
	wait := m.Init()

	b.SetQuote("AAPL", domain.Quote{Symbol: "AAPL", Price: 200, Change: 4}, domain.Series{})
	b.MarkCycle("cycle-7", time.Now())
	b.Publish()

	msg := wait()
	if _, ok := msg.(snapshotMsg); !ok {
		t.Fatalf("expected snapshotMsg, got %T", msg)
	}
	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Error("model should keep waiting for snapshots")
	}
	view := next.(Model).View()
	if !strings.Contains(view, "$200.00") {
		t.Error("view not redrawn with new quote")
	}
	if !strings.Contains(view, "cycle cycle-7") {
		t.Error("header missing cycle id")
	}
}

func TestViewBeforeResize(t *testing.T) {
	b := dashboard.NewBoard("AAPL")
	m := New(context.Background(), b, &fakeSelector{board: b}, domain.DefaultSymbols, "", discard)
	if m.View() != "Loading..." {
		t.Errorf("View = %q", m.View())
	}
}

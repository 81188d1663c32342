// Package tui is the terminal renderer: a bubbletea program that redraws the
// dashboard after every fetch cycle and lets the user switch symbols.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"tradevision/internal/dashboard"
)

// Selector switches the polled symbol. *dashboard.Poller satisfies it.
type Selector interface {
	Select(ctx context.Context, symbol string)
}

type snapshotMsg dashboard.Snapshot

// waitForSnapshot blocks until the board publishes the next cycle. A closed
// channel yields no message.
func waitForSnapshot(ch <-chan dashboard.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx      context.Context
	board    *dashboard.Board
	selector Selector
	symbols  []string
	apiBase  string
	logger   *slog.Logger

	subID   int
	updates <-chan dashboard.Snapshot
	snap    dashboard.Snapshot

	viewport      viewport.Model
	ready         bool
	width, height int
}

// New subscribes to board and returns the initial model. Polling loops
// started by key presses are bound to ctx.
func New(ctx context.Context, board *dashboard.Board, selector Selector, symbols []string, apiBase string, logger *slog.Logger) Model {
	id, ch := board.Subscribe(1)
	return Model{
		ctx:      ctx,
		board:    board,
		selector: selector,
		symbols:  symbols,
		apiBase:  apiBase,
		logger:   logger,
		subID:    id,
		updates:  ch,
		snap:     board.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			m.board.Unsubscribe(m.subID)
			return m, tea.Quit
		case "tab", "right":
			m.step(1)
			return m, nil
		case "shift+tab", "left":
			m.step(-1)
			return m, nil
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(key[0] - '1')
			if idx < len(m.symbols) {
				m.selectSymbol(m.symbols[idx])
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := max(m.height-2, 1)
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.MouseWheelEnabled = true
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refresh()
		return m, nil

	case snapshotMsg:
		m.snap = dashboard.Snapshot(msg)
		m.refresh()
		return m, waitForSnapshot(m.updates)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// step moves the selection delta places through the symbol list, wrapping
// at both ends.
func (m *Model) step(delta int) {
	n := len(m.symbols)
	if n == 0 {
		return
	}
	cur := 0
	for i, s := range m.symbols {
		if s == m.snap.Symbol {
			cur = i
			break
		}
	}
	m.selectSymbol(m.symbols[((cur+delta)%n+n)%n])
}

func (m *Model) selectSymbol(symbol string) {
	if symbol == m.snap.Symbol {
		return
	}
	m.logger.Info("symbol selected", "symbol", symbol)
	m.selector.Select(m.ctx, symbol)
	// Old data stays visible under the new symbol until the first cycle
	// for it completes.
	m.snap = m.board.Snapshot()
	m.refresh()
}

func (m *Model) refresh() {
	if m.ready {
		m.viewport.SetContent(Render(m.snap, m.symbols, m.apiBase, m.width))
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerText := fmt.Sprintf(" TradeVision  %s", m.snap.Symbol)
	if m.snap.Cycle != "" {
		headerText += fmt.Sprintf("    cycle %.8s", m.snap.Cycle)
	}
	headerBar := headerBarStyle.Render(padOrTrunc(headerText, m.width))

	pct := m.viewport.ScrollPercent() * 100
	footerLeft := " q quit  tab/left/right symbol  1-4 pick  pgup/dn scroll"
	footerRight := fmt.Sprintf("%.0f%% ", pct)
	gap := max(m.width-len(footerLeft)-len(footerRight), 0)
	footerBar := footerBarStyle.Render(padOrTrunc(footerLeft+strings.Repeat(" ", gap)+footerRight, m.width))

	return headerBar + "\n" + m.viewport.View() + "\n" + footerBar
}

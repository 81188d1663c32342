// Package dashboard holds the dashboard state, the periodic fetch cycle that
// refreshes it, and the formatting helpers shared by the terminal and web
// renderers.
package dashboard

import (
	"sync"
	"time"

	"tradevision/internal/domain"
)

// Snapshot is an immutable copy of the board state handed to renderers.
type Snapshot struct {
	Symbol          string                   `json:"symbol"`
	Quote           *domain.Quote            `json:"quote,omitempty"`
	News            []domain.NewsItem        `json:"news"`
	OptionsFlow     []domain.OptionFlowEntry `json:"options_flow"`
	Risk            *domain.RiskMetrics      `json:"risk_metrics,omitempty"`
	Series          domain.Series            `json:"series"`
	Recommendations []domain.Recommendation  `json:"recommendations"`
	Cycle           string                   `json:"cycle,omitempty"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// Board is the dashboard's state. Every setter replaces its field wholesale;
// there is no merging or diffing between cycles.
type Board struct {
	mu        sync.RWMutex
	symbol    string
	quote     *domain.Quote
	news      []domain.NewsItem
	options   []domain.OptionFlowEntry
	risk      *domain.RiskMetrics
	series    domain.Series
	cycle     string
	updatedAt time.Time

	subsMu    sync.Mutex
	nextSubID int
	subs      map[int]chan Snapshot
}

// NewBoard creates a board with symbol selected.
func NewBoard(symbol string) *Board {
	return &Board{
		symbol: domain.NormalizeSymbol(symbol),
		subs:   make(map[int]chan Snapshot),
	}
}

// Symbol returns the currently selected symbol.
func (b *Board) Symbol() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.symbol
}

// SetSymbol changes the selected symbol. Previously fetched data stays in
// place until the next cycle replaces it.
func (b *Board) SetSymbol(symbol string) {
	b.mu.Lock()
	b.symbol = domain.NormalizeSymbol(symbol)
	b.mu.Unlock()
}

// SetQuote stores q and its derived series if symbol is still selected.
// It returns false when the quote belongs to a symbol that is no longer
// selected and was discarded.
func (b *Board) SetQuote(symbol string, q domain.Quote, s domain.Series) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if domain.NormalizeSymbol(symbol) != b.symbol {
		return false
	}
	b.quote = &q
	b.series = s
	return true
}

// SetNews replaces the news collection.
func (b *Board) SetNews(items []domain.NewsItem) {
	b.mu.Lock()
	b.news = items
	b.mu.Unlock()
}

// SetOptionsFlow replaces the options-flow collection.
func (b *Board) SetOptionsFlow(entries []domain.OptionFlowEntry) {
	b.mu.Lock()
	b.options = entries
	b.mu.Unlock()
}

// SetRiskMetrics replaces the risk metrics.
func (b *Board) SetRiskMetrics(m domain.RiskMetrics) {
	b.mu.Lock()
	b.risk = &m
	b.mu.Unlock()
}

// MarkCycle records the id and completion time of the latest fetch cycle.
func (b *Board) MarkCycle(id string, at time.Time) {
	b.mu.Lock()
	b.cycle = id
	b.updatedAt = at
	b.mu.Unlock()
}

// Snapshot returns a deep copy of the current state.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := Snapshot{
		Symbol:          b.symbol,
		News:            append([]domain.NewsItem{}, b.news...),
		OptionsFlow:     append([]domain.OptionFlowEntry{}, b.options...),
		Series:          b.series,
		Recommendations: Recommendations(),
		Cycle:           b.cycle,
		UpdatedAt:       b.updatedAt,
	}
	s.Series.Points = append([]domain.SyntheticPoint{}, b.series.Points...)
	if b.quote != nil {
		q := *b.quote
		s.Quote = &q
	}
	if b.risk != nil {
		r := *b.risk
		s.Risk = &r
	}
	return s
}

// Subscribe creates a channel that receives a snapshot after every
// completed fetch cycle.
func (b *Board) Subscribe(bufSize int) (id int, ch <-chan Snapshot) {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	id = b.nextSubID
	b.nextSubID++
	c := make(chan Snapshot, bufSize)
	b.subs[id] = c
	return id, c
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Board) Unsubscribe(id int) {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	if ch, ok := b.subs[id]; ok {
		close(ch)
		delete(b.subs, id)
	}
}

// Publish sends the current snapshot to every subscriber.
func (b *Board) Publish() {
	snap := b.Snapshot()
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- snap:
		default:
			// Slow subscriber, drop event.
		}
	}
}

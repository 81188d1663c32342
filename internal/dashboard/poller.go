package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Poller drives fetch cycles for the selected symbol: one immediately on
// selection, then one per interval. At most one polling loop runs at a time.
type Poller struct {
	fetcher  *Fetcher
	board    *Board
	interval time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	loops  atomic.Int32
}

// NewPoller creates a Poller that refreshes board through fetcher every
// interval.
func NewPoller(fetcher *Fetcher, board *Board, interval time.Duration, log *slog.Logger) *Poller {
	return &Poller{
		fetcher:  fetcher,
		board:    board,
		interval: interval,
		log:      log,
	}
}

// Select switches polling to symbol. The previous loop is cancelled together
// with its in-flight requests, and Select waits for it to exit before the new
// loop starts, so exactly one loop is ever active. The loop lives until ctx
// is cancelled, Stop is called, or Select is called again.
func (p *Poller) Select(ctx context.Context, symbol string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.board.SetSymbol(symbol)
	symbol = p.board.Symbol()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done
	p.loops.Add(1)

	p.log.Info("polling started", "symbol", symbol, "interval", p.interval)
	go p.run(loopCtx, symbol, done)
}

// Stop cancels the active loop, if any, and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Active reports how many polling loops are running (0 or 1).
func (p *Poller) Active() int {
	return int(p.loops.Load())
}

func (p *Poller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
}

// run executes cycles synchronously, so cycles of one loop never overlap.
// Ticks that fire while a cycle is still running are dropped by the ticker.
func (p *Poller) run(ctx context.Context, symbol string, done chan struct{}) {
	defer close(done)
	defer p.loops.Add(-1)

	p.fetcher.Cycle(ctx, symbol)

	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			p.log.Info("polling stopped", "symbol", symbol)
			return
		case <-t.C:
			p.fetcher.Cycle(ctx, symbol)
		}
	}
}

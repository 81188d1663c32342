package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tradevision/internal/domain"
	"tradevision/internal/series"
)

// Source is the read side of the backend API. *tradevision.Client
// satisfies it.
type Source interface {
	GetQuote(ctx context.Context, symbol string) (domain.Quote, error)
	GetNews(ctx context.Context) ([]domain.NewsItem, error)
	GetOptionsFlow(ctx context.Context) ([]domain.OptionFlowEntry, error)
	GetRiskMetrics(ctx context.Context) (domain.RiskMetrics, error)
}

// Endpoint names used in logs and CycleResult.
const (
	EndpointQuote       = "quote"
	EndpointNews        = "news"
	EndpointOptionsFlow = "options-flow"
	EndpointRiskMetrics = "risk-metrics"
)

// CycleResult summarises one fetch cycle.
type CycleResult struct {
	ID     string
	Symbol string
	Failed map[string]error // endpoint -> error, nil when all succeeded
	Stale  bool             // quote arrived after the symbol changed
}

// Fetcher runs fetch cycles against a Source and applies the results to a
// Board.
type Fetcher struct {
	src   Source
	board *Board
	gen   *series.Generator
	log   *slog.Logger
	now   func() time.Time
}

// NewFetcher creates a Fetcher. A nil generator gets an unseeded one.
func NewFetcher(src Source, board *Board, gen *series.Generator, log *slog.Logger) *Fetcher {
	if gen == nil {
		gen = series.NewGenerator(nil)
	}
	return &Fetcher{src: src, board: board, gen: gen, log: log, now: time.Now}
}

// Cycle issues the four backend requests concurrently. Each success replaces
// its part of the board as soon as it arrives; a failure is logged and leaves
// that part untouched. Nothing is retried or rolled back. Subscribers are
// notified once all four requests have settled, unless ctx was cancelled.
func (f *Fetcher) Cycle(ctx context.Context, symbol string) CycleResult {
	res := CycleResult{ID: uuid.NewString(), Symbol: domain.NormalizeSymbol(symbol)}
	log := f.log.With("cycle", res.ID, "symbol", res.Symbol)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	fail := func(endpoint string, err error) {
		mu.Lock()
		if res.Failed == nil {
			res.Failed = make(map[string]error)
		}
		res.Failed[endpoint] = err
		mu.Unlock()

		if ctx.Err() != nil {
			log.Debug("request abandoned", "endpoint", endpoint, "error", err)
			return
		}
		log.Warn("fetch failed", "endpoint", endpoint, "error", err)
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		q, err := f.src.GetQuote(ctx, res.Symbol)
		if err != nil {
			fail(EndpointQuote, err)
			return
		}
		if !f.board.SetQuote(res.Symbol, q, f.gen.Generate(q.Price)) {
			mu.Lock()
			res.Stale = true
			mu.Unlock()
			log.Debug("discarded quote for deselected symbol")
		}
	}()
	go func() {
		defer wg.Done()
		items, err := f.src.GetNews(ctx)
		if err != nil {
			fail(EndpointNews, err)
			return
		}
		f.board.SetNews(items)
	}()
	go func() {
		defer wg.Done()
		entries, err := f.src.GetOptionsFlow(ctx)
		if err != nil {
			fail(EndpointOptionsFlow, err)
			return
		}
		f.board.SetOptionsFlow(entries)
	}()
	go func() {
		defer wg.Done()
		m, err := f.src.GetRiskMetrics(ctx)
		if err != nil {
			fail(EndpointRiskMetrics, err)
			return
		}
		f.board.SetRiskMetrics(m)
	}()
	wg.Wait()

	if ctx.Err() != nil {
		return res
	}

	f.board.MarkCycle(res.ID, f.now())
	f.board.Publish()
	log.Debug("fetch cycle complete", "failed", len(res.Failed))
	return res
}

// Package mockapi serves the TradeVision backend API with simulated quotes
// and fixture-backed news, options flow, and risk metrics.
package mockapi

import (
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"tradevision/internal/domain"
	"tradevision/internal/series"
	"tradevision/internal/store"
)

// BasePrices anchors simulated quotes per symbol; unknown symbols use
// DefaultBasePrice.
var BasePrices = map[string]float64{
	"AAPL":  175,
	"MSFT":  350,
	"GOOGL": 135,
	"TSLA":  250,
}

const (
	DefaultBasePrice = 100
	priceJitter      = 10
	changeJitter     = 5
	minVolume        = 100_000
	maxVolume        = 10_000_000
)

// Server implements the backend HTTP API and the gRPC health service.
type Server struct {
	fixtures store.FixtureStore
	log      *slog.Logger
	health   *health.Server

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewServer creates a Server reading fixtures from fs. A nil src gives an
// unseeded random source for quotes.
func NewServer(fs store.FixtureStore, src rand.Source, log *slog.Logger) *Server {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return &Server{
		fixtures: fs,
		log:      log,
		health:   hs,
		rng:      rand.New(src),
		now:      time.Now,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/stock/{symbol}", s.handleStock)
	mux.HandleFunc("GET /api/news", s.handleNews)
	mux.HandleFunc("GET /api/options-flow", s.handleOptionsFlow)
	mux.HandleFunc("GET /api/risk-metrics", s.handleRiskMetrics)
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

// RegisterGRPC registers the health service on the given gRPC server.
func (s *Server) RegisterGRPC(gs *grpc.Server) {
	healthpb.RegisterHealthServer(gs, s.health)
}

// Shutdown marks every gRPC health service as NOT_SERVING.
func (s *Server) Shutdown() {
	s.health.Shutdown()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Quote simulates a quote for symbol: the base price shifted by up to ±10,
// a change of up to ±5, and a volume in [100000, 10000000].
func (s *Server) Quote(symbol string) domain.Quote {
	symbol = domain.NormalizeSymbol(symbol)
	base, ok := BasePrices[symbol]
	if !ok {
		base = DefaultBasePrice
	}

	s.mu.Lock()
	price := base + (s.rng.Float64()*2-1)*priceJitter
	change := (s.rng.Float64()*2 - 1) * changeJitter
	volume := minVolume + s.rng.Int64N(maxVolume-minVolume+1)
	s.mu.Unlock()

	return domain.Quote{
		Symbol:        symbol,
		Price:         series.Round2(price),
		Change:        series.Round2(change),
		ChangePercent: series.Round2(change / price * 100),
		Volume:        volume,
		Timestamp:     s.now(),
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"message": "TradeVision API v1.0", "status": "active"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if domain.NormalizeSymbol(symbol) == "" {
		writeError(w, http.StatusBadRequest, "symbol required")
		return
	}
	writeJSON(w, s.Quote(symbol))
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	items, err := s.fixtures.ListNews(r.Context())
	if err != nil {
		s.log.Error("listing news", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read news")
		return
	}
	writeJSON(w, items)
}

func (s *Server) handleOptionsFlow(w http.ResponseWriter, r *http.Request) {
	entries, err := s.fixtures.ListOptionsFlow(r.Context())
	if err != nil {
		s.log.Error("listing options flow", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read options flow")
		return
	}
	writeJSON(w, entries)
}

func (s *Server) handleRiskMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := s.fixtures.RiskMetrics(r.Context())
	if err != nil {
		s.log.Error("reading risk metrics", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read risk metrics")
		return
	}
	writeJSON(w, m)
}

// Package web serves the browser dashboard: a server-rendered page, a JSON
// state endpoint, and a websocket that pushes a snapshot after every fetch
// cycle.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"tradevision/internal/dashboard"
	"tradevision/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Selector switches the polled symbol. *dashboard.Poller satisfies it.
type Selector interface {
	Select(ctx context.Context, symbol string)
}

// DashboardServer serves the dashboard HTTP API and pages.
type DashboardServer struct {
	board    *dashboard.Board
	selector Selector
	symbols  []string
	apiBase  string
	log      *slog.Logger

	// Lifetime of polling loops started from HTTP requests; request
	// contexts end with the response.
	ctx context.Context
}

// NewDashboardServer creates a new dashboard HTTP server. Polling loops
// started through the symbol endpoint are bound to ctx.
func NewDashboardServer(
	ctx context.Context,
	board *dashboard.Board,
	selector Selector,
	symbols []string,
	apiBase string,
	log *slog.Logger,
) *DashboardServer {
	return &DashboardServer{
		board:    board,
		selector: selector,
		symbols:  symbols,
		apiBase:  apiBase,
		log:      log,
		ctx:      ctx,
	}
}

// RegisterRoutes registers all routes on the given mux.
func (s *DashboardServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /fragment", s.handleFragment)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/symbol/{symbol}", s.handleSelect)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns an http.Handler with CORS middleware.
func (s *DashboardServer) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
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

func (s *DashboardServer) view() BoardView {
	return NewBoardView(s.board.Snapshot(), s.symbols, s.apiBase)
}

// render executes the named template into a buffer first so a template
// failure never produces a half-written 200 response.
func (s *DashboardServer) render(w http.ResponseWriter, name string) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, s.view()); err != nil {
		s.log.Error("rendering template", "template", name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *DashboardServer) handlePage(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "page.html")
}

func (s *DashboardServer) handleFragment(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "board")
}

func (s *DashboardServer) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.board.Snapshot())
}

func (s *DashboardServer) handleSelect(w http.ResponseWriter, r *http.Request) {
	symbol := domain.NormalizeSymbol(r.PathValue("symbol"))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol required")
		return
	}

	if symbol != s.board.Symbol() {
		s.log.Info("symbol selected", "symbol", symbol)
		s.selector.Select(s.ctx, symbol)
	}
	writeJSON(w, map[string]string{"symbol": symbol})
}

package tradevision

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8000"
	c := NewClient(baseURL)

	if c == nil {
		t.Fatal("expected non-nil client")
	}
	if c.baseURL != baseURL {
		t.Errorf("expected baseURL %q, got %q", baseURL, c.baseURL)
	}
	if c.httpClient == nil {
		t.Fatal("expected non-nil httpClient")
	}
	if c.httpClient.Timeout != 0 {
		t.Errorf("expected no default timeout, got %v", c.httpClient.Timeout)
	}

	c = NewClient(baseURL, WithTimeout(3*time.Second))
	if c.httpClient.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", c.httpClient.Timeout)
	}
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/stock/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"` + r.PathValue("symbol") + `","price":150.0,"change":-3.0}`))
	})
	mux.HandleFunc("GET /api/news", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"title":"Tech Earnings Beat Expectations","sentiment":82.3,"source":"Bloomberg"}]`))
	})
	mux.HandleFunc("GET /api/options-flow", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"symbol":"MSFT","option_type":"put","volume":8750,"strike":340,"unusual":false}]`))
	})
	mux.HandleFunc("GET /api/risk-metrics", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"healthy"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientEndpoints(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL)
	ctx := context.Background()

	q, err := c.GetQuote(ctx, "TSLA")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if q.Symbol != "TSLA" || q.Price != 150 || q.Change != -3 {
		t.Errorf("unexpected quote %+v", q)
	}

	news, err := c.GetNews(ctx)
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if len(news) != 1 || news[0].Sentiment != 82.3 {
		t.Errorf("unexpected news %+v", news)
	}

	flow, err := c.GetOptionsFlow(ctx)
	if err != nil {
		t.Fatalf("GetOptionsFlow: %v", err)
	}
	if len(flow) != 1 || flow[0].Strike != 340 || flow[0].Unusual {
		t.Errorf("unexpected options flow %+v", flow)
	}

	if err := c.Health(ctx); err != nil {
		t.Errorf("Health: %v", err)
	}
}

func TestClientStatusError(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL)

	_, err := c.GetRiskMetrics(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Errorf("status code = %d, want 500", se.Code)
	}
}

func TestClientContextCancelled(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.GetNews(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

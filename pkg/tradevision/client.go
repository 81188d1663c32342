// Package tradevision is a Go SDK for the TradeVision market API: quotes,
// news sentiment, options flow, and risk metrics.
package tradevision

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tradevision/internal/domain"
)

// Endpoint paths exposed by the backend.
const (
	PathStock       = "/api/stock/"
	PathNews        = "/api/news"
	PathOptionsFlow = "/api/options-flow"
	PathRiskMetrics = "/api/risk-metrics"
	PathHealth      = "/health"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

// Client provides a Go SDK for interacting with the TradeVision API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a per-request timeout. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a new API client. By default requests carry no timeout;
// callers bound them through the context or WithTimeout.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the endpoint the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetQuote retrieves the current quote for symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (domain.Quote, error) {
	var q domain.Quote
	err := c.getJSON(ctx, PathStock+url.PathEscape(symbol), &q)
	return q, err
}

// GetNews retrieves the latest news items with sentiment scores.
func (c *Client) GetNews(ctx context.Context) ([]domain.NewsItem, error) {
	var items []domain.NewsItem
	err := c.getJSON(ctx, PathNews, &items)
	return items, err
}

// GetOptionsFlow retrieves recent options activity.
func (c *Client) GetOptionsFlow(ctx context.Context) ([]domain.OptionFlowEntry, error) {
	var entries []domain.OptionFlowEntry
	err := c.getJSON(ctx, PathOptionsFlow, &entries)
	return entries, err
}

// GetRiskMetrics retrieves the portfolio risk metrics.
func (c *Client) GetRiskMetrics(ctx context.Context) (domain.RiskMetrics, error) {
	var m domain.RiskMetrics
	err := c.getJSON(ctx, PathRiskMetrics, &m)
	return m, err
}

// Health checks that the backend is reachable and reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, PathHealth, &body); err != nil {
		return err
	}
	if body.Status != "healthy" {
		return fmt.Errorf("backend status %q", body.Status)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", u, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{URL: u, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", u, err)
	}
	return nil
}

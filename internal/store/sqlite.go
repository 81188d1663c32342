package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tradevision/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ FixtureStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS news (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	title     TEXT    NOT NULL,
	source    TEXT    NOT NULL,
	sentiment REAL    NOT NULL
);
CREATE TABLE IF NOT EXISTS options_flow (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol      TEXT    NOT NULL,
	option_type TEXT    NOT NULL CHECK (option_type IN ('call', 'put')),
	volume      INTEGER NOT NULL,
	strike      REAL    NOT NULL,
	unusual     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS risk_metrics (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	var_95       REAL NOT NULL,
	sharpe_ratio REAL NOT NULL,
	beta         REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	correlation  REAL NOT NULL
);`

// SQLiteStore implements FixtureStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, creates the
// fixture tables, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Seed fills empty tables with the default fixtures. Tables that already
// hold rows are left alone, so Seed is safe to call on every start.
func (s *SQLiteStore) Seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	empty := func(table string) (bool, error) {
		var n int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return false, fmt.Errorf("counting %s: %w", table, err)
		}
		return n == 0, nil
	}

	if ok, err := empty("news"); err != nil {
		return err
	} else if ok {
		for _, n := range DefaultNews {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO news (title, source, sentiment) VALUES (?, ?, ?)",
				n.Title, n.Source, n.Sentiment); err != nil {
				return fmt.Errorf("seeding news: %w", err)
			}
		}
	}

	if ok, err := empty("options_flow"); err != nil {
		return err
	} else if ok {
		for _, o := range DefaultOptionsFlow {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO options_flow (symbol, option_type, volume, strike, unusual) VALUES (?, ?, ?, ?, ?)",
				o.Symbol, string(o.OptionType), o.Volume, o.Strike, o.Unusual); err != nil {
				return fmt.Errorf("seeding options flow: %w", err)
			}
		}
	}

	if ok, err := empty("risk_metrics"); err != nil {
		return err
	} else if ok {
		if err := putRiskMetrics(ctx, tx, DefaultRiskMetrics); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Writers
// ---------------------------------------------------------------------------

// AddNews appends a news item.
func (s *SQLiteStore) AddNews(ctx context.Context, n domain.NewsItem) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO news (title, source, sentiment) VALUES (?, ?, ?)",
		n.Title, n.Source, n.Sentiment)
	return err
}

// SetRiskMetrics replaces the stored risk metrics.
func (s *SQLiteStore) SetRiskMetrics(ctx context.Context, m domain.RiskMetrics) error {
	return putRiskMetrics(ctx, s.db, m)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putRiskMetrics(ctx context.Context, db execer, m domain.RiskMetrics) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO risk_metrics (id, var_95, sharpe_ratio, beta, max_drawdown, correlation)
		 VALUES (1, ?, ?, ?, ?, ?)`,
		m.VaR95, m.SharpeRatio, m.Beta, m.MaxDrawdown, m.Correlation)
	if err != nil {
		return fmt.Errorf("writing risk metrics: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// FixtureStore implementation
// ---------------------------------------------------------------------------

// ListNews returns all news items in insertion order.
func (s *SQLiteStore) ListNews(ctx context.Context) ([]domain.NewsItem, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT title, source, sentiment FROM news ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.NewsItem{}
	for rows.Next() {
		var n domain.NewsItem
		if err := rows.Scan(&n.Title, &n.Source, &n.Sentiment); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// ListOptionsFlow returns all options-flow entries in insertion order.
func (s *SQLiteStore) ListOptionsFlow(ctx context.Context) ([]domain.OptionFlowEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT symbol, option_type, volume, strike, unusual FROM options_flow ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.OptionFlowEntry{}
	for rows.Next() {
		var (
			o  domain.OptionFlowEntry
			ot string
		)
		if err := rows.Scan(&o.Symbol, &ot, &o.Volume, &o.Strike, &o.Unusual); err != nil {
			return nil, err
		}
		o.OptionType = domain.OptionType(ot)
		entries = append(entries, o)
	}
	return entries, rows.Err()
}

// ErrNoRiskMetrics is returned when the risk_metrics table is empty.
var ErrNoRiskMetrics = errors.New("store: no risk metrics")

// RiskMetrics returns the current risk metrics.
func (s *SQLiteStore) RiskMetrics(ctx context.Context) (domain.RiskMetrics, error) {
	var m domain.RiskMetrics
	err := s.db.QueryRowContext(ctx,
		"SELECT var_95, sharpe_ratio, beta, max_drawdown, correlation FROM risk_metrics WHERE id = 1").
		Scan(&m.VaR95, &m.SharpeRatio, &m.Beta, &m.MaxDrawdown, &m.Correlation)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrNoRiskMetrics
	}
	return m, err
}

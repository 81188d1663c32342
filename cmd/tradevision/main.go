package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"tradevision/internal/config"
	"tradevision/internal/dashboard"
	"tradevision/internal/series"
	"tradevision/internal/tui"
	"tradevision/internal/util"
	"tradevision/pkg/tradevision"
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfgPath := "config/tradevision.yaml"
	if p := os.Getenv("TRADEVISION_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// The terminal belongs to bubbletea, so logs go to a file.
	logPath := fmt.Sprintf("/tmp/tradevision-%s.log", time.Now().Format("2006-01-02"))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("opening log file: %v", err)
	}
	defer logFile.Close()
	logger := util.NewLogger(logFile, cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	client := tradevision.NewClient(cfg.API.BaseURL, tradevision.WithTimeout(cfg.API.RequestTimeout))
	board := dashboard.NewBoard(cfg.API.DefaultSymbol)
	fetcher := dashboard.NewFetcher(client, board, series.NewGenerator(nil), logger)
	poller := dashboard.NewPoller(fetcher, board, cfg.API.PollInterval, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	logger.Info("starting dashboard", "api", client.BaseURL(), "symbol", board.Symbol())
	poller.Select(ctx, board.Symbol())
	defer poller.Stop()

	p := tea.NewProgram(
		tui.New(ctx, board, poller, cfg.API.Symbols, client.BaseURL(), logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

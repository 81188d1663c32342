package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tradevision/internal/config"
	"tradevision/internal/dashboard"
	"tradevision/internal/series"
	"tradevision/internal/util"
	"tradevision/internal/web"
	"tradevision/pkg/tradevision"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "config/tradevision.yaml"
	if p := os.Getenv("TRADEVISION_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := util.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	client := tradevision.NewClient(cfg.API.BaseURL, tradevision.WithTimeout(cfg.API.RequestTimeout))
	board := dashboard.NewBoard(cfg.API.DefaultSymbol)
	fetcher := dashboard.NewFetcher(client, board, series.NewGenerator(nil), logger)
	poller := dashboard.NewPoller(fetcher, board, cfg.API.PollInterval, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	poller.Select(ctx, board.Symbol())

	srv := web.NewDashboardServer(ctx, board, poller, cfg.API.Symbols, client.BaseURL(), logger)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.WebPort),
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("web dashboard listening", "addr", httpServer.Addr, "api", client.BaseURL())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down web dashboard")

	poller.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

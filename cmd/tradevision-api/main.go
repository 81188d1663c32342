package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"

	"tradevision/internal/config"
	"tradevision/internal/mockapi"
	"tradevision/internal/store"
	"tradevision/internal/util"
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

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Fixture store.
	fixtures, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening fixture store: %v", err)
	}
	defer fixtures.Close()
	if err := fixtures.Seed(ctx); err != nil {
		log.Fatalf("seeding fixtures: %v", err)
	}
	logger.Info("fixture store ready", "path", cfg.Storage.SQLitePath)

	srv := mockapi.NewServer(fixtures, nil, logger)

	// gRPC health.
	grpcAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Fatalf("listening on %s: %v", grpcAddr, err)
	}
	gs := grpc.NewServer()
	srv.RegisterGRPC(gs)

	go func() {
		logger.Info("gRPC health listening", "addr", grpcAddr)
		if err := gs.Serve(lis); err != nil {
			logger.Error("gRPC server error", "error", err)
		}
	}()

	// HTTP API.
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("TradeVision API listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down TradeVision API")

	srv.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	gs.GracefulStop()
}

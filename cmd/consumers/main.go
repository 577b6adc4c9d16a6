package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinecatch/internal/config"
	"cinecatch/internal/consumers"
	"cinecatch/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Consumers need a broker; there is no degraded mode here.
	if cfg.NATS.URL == "" {
		logger.Fatal("NATS_URL is required for the consumers service")
	}
	cfg.NATS.ClientID = "cinecatch-consumers"

	consumerService, err := consumers.NewConsumerService(cfg)
	if err != nil {
		logger.Fatal("failed to create consumer service", "error", err)
	}

	if err := consumerService.Start(); err != nil {
		logger.Fatal("failed to start consumers", "error", err)
	}

	logger.Get().Info("consumers service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := consumerService.Shutdown(ctx); err != nil {
		logger.Get().Error("error during shutdown", "error", err)
	}

	logger.Get().Info("consumers service stopped")
}

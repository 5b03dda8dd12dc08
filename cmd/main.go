package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pupkingeorgij/logistics-service/internal/config"
	"github.com/pupkingeorgij/logistics-service/internal/kafka"
	"github.com/pupkingeorgij/logistics-service/internal/logger"
	"github.com/pupkingeorgij/logistics-service/internal/server"
	"github.com/pupkingeorgij/logistics-service/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	var producer kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewWriterProducer(cfg.KafkaBrokers, cfg.KafkaAuditTopic, log)
	} else {
		producer = kafka.NewConsoleProducer(log)
	}

	stg := storage.NewMemoryStorage()
	auditManager := server.NewAuditManager(cfg.AuditWorkers, cfg.AuditBatchSize, cfg.AuditFlushInterval, producer, log)
	srv := server.New(stg, auditManager, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gctx, cfg.Port)
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
	log.Info("server gracefully stopped")
}

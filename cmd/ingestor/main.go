package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rawlake/ingest-service/internal/config"
	"github.com/rawlake/ingest-service/internal/feed"
	"github.com/rawlake/ingest-service/internal/logger"
	"github.com/rawlake/ingest-service/internal/poller"
	"github.com/rawlake/ingest-service/internal/storage/s3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		if err := log.Sync(); err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting on-chain ingestor",
		zap.String("environment", cfg.Service.Environment),
		zap.String("api_base", cfg.Mempool.APIBase))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage writer
	writer, err := s3.NewWriter(ctx, cfg.S3, log)
	if err != nil {
		log.Fatal("Failed to create S3 writer", zap.Error(err))
	}

	if err := writer.EnsureBucket(ctx); err != nil {
		log.Fatal("Failed to ensure raw bucket", zap.Error(err))
	}
	log.Info("Writing raw feed records", zap.String("bucket", writer.Bucket()))

	feedClient := feed.NewClient(cfg.Mempool.APIBase)

	mempoolPoller := poller.NewMempoolPoller(feedClient, writer,
		poller.NewSeenSet[string](),
		time.Duration(cfg.Mempool.TxIntervalSec)*time.Second, log)
	blockPoller := poller.NewBlockPoller(feedClient, writer,
		poller.NewSeenSet[int64](),
		time.Duration(cfg.Mempool.BlockIntervalSec)*time.Second, log)

	go mempoolPoller.Run(ctx)
	go blockPoller.Run(ctx)

	// Ops endpoint: health check and Prometheus metrics.
	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		mux.Handle("/metrics", promhttp.Handler())

		addr := ":" + cfg.Service.OpsPort
		log.Info("Ops server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("Ops server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down ingestor gracefully")
}

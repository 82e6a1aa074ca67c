package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/rawlake/ingest-service/internal/config"
	"github.com/rawlake/ingest-service/internal/handler"
	"github.com/rawlake/ingest-service/internal/logger"
	"github.com/rawlake/ingest-service/internal/normalizer"
	"github.com/rawlake/ingest-service/internal/service"
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

	log.Info("Starting ingest API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	ctx := context.Background()

	// Initialize storage writer
	writer, err := s3.NewWriter(ctx, cfg.S3, log)
	if err != nil {
		log.Fatal("Failed to create S3 writer", zap.Error(err))
	}

	if err := writer.EnsureBucket(ctx); err != nil {
		log.Fatal("Failed to ensure raw bucket", zap.Error(err))
	}

	// Initialize ingest pipeline
	ingestService := service.NewIngestService(normalizer.New(), writer, log)
	h := handler.NewHandler(ingestService, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}

package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Service holds process-level settings.
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	APIPort     string `envconfig:"INGEST_API_PORT" default:"8088"`
	OpsPort     string `envconfig:"INGESTOR_OPS_PORT" default:"8089"`
}

// S3 holds object-store settings. The defaults target a local MinIO.
type S3 struct {
	Bucket    string `envconfig:"S3_BUCKET_RAW" default:"dp-raw"`
	Endpoint  string `envconfig:"S3_ENDPOINT" default:"http://localhost:9000"`
	Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	AccessKey string `envconfig:"MINIO_ROOT_USER" default:"admin"`
	SecretKey string `envconfig:"MINIO_ROOT_PASSWORD" default:"adminadmin"`
}

// Mempool holds upstream chain feed settings.
type Mempool struct {
	APIBase          string `envconfig:"MEMPOOL_API_BASE" default:"https://mempool.space/api"`
	TxIntervalSec    int    `envconfig:"MEMPOOL_POLL_INTERVAL_SEC" default:"5"`
	BlockIntervalSec int    `envconfig:"BLOCKS_POLL_INTERVAL_SEC" default:"60"`
}

type Config struct {
	Service Service
	S3      S3
	Mempool Mempool
}

// Load reads configuration from the environment. Every option has a
// default, so the services run with zero configuration in a local setup.
func Load() (*Config, error) {
	// Optional .env for local development; real env vars win when set.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	envConfig "github.com/rawlake/ingest-service/internal/config"
	"github.com/rawlake/ingest-service/internal/storage"
)

// ndjsonContentType marks stored objects as newline-delimited JSON.
const ndjsonContentType = "application/x-ndjson"

// S3API is the subset of the S3 client the writer uses.
type S3API interface {
	HeadBucket(ctx context.Context, params *awss3.HeadBucketInput, optFns ...func(*awss3.Options)) (*awss3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *awss3.CreateBucketInput, optFns ...func(*awss3.Options)) (*awss3.CreateBucketOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// Writer persists records as single-line NDJSON objects in one bucket.
type Writer struct {
	client S3API
	config envConfig.S3
	log    *zap.Logger
}

// NewWriter creates an S3 writer. The endpoint is addressed path-style with
// static credentials, which is what a local MinIO expects.
func NewWriter(ctx context.Context, s3Config envConfig.S3, log *zap.Logger) (*Writer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s3Config.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3Config.AccessKey, s3Config.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		if s3Config.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3Config.Endpoint)
		}
		o.UsePathStyle = true
	})

	log.Info("S3 writer created",
		zap.String("endpoint", s3Config.Endpoint),
		zap.String("region", s3Config.Region),
		zap.String("bucket", s3Config.Bucket))

	return &Writer{client: client, config: s3Config, log: log}, nil
}

// NewWriterWithClient creates a writer over an existing client.
func NewWriterWithClient(client S3API, s3Config envConfig.S3, log *zap.Logger) *Writer {
	return &Writer{client: client, config: s3Config, log: log}
}

// Bucket returns the destination bucket name.
func (w *Writer) Bucket() string {
	return w.config.Bucket
}

// EnsureBucket creates the bucket when the head probe fails. Creation races
// with other writers are tolerated.
func (w *Writer) EnsureBucket(ctx context.Context) error {
	if _, err := w.client.HeadBucket(ctx, &awss3.HeadBucketInput{
		Bucket: aws.String(w.config.Bucket),
	}); err == nil {
		return nil
	}

	w.log.Info("Creating raw bucket", zap.String("bucket", w.config.Bucket))

	_, err := w.client.CreateBucket(ctx, &awss3.CreateBucketInput{
		Bucket: aws.String(w.config.Bucket),
	})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return &storage.StorageError{Op: "create-bucket", Err: err}
	}

	return nil
}

// PutLine writes record at key as one JSON object followed by a newline.
func (w *Writer) PutLine(ctx context.Context, key string, record interface{}) error {
	body, err := json.Marshal(record)
	if err != nil {
		return &storage.StorageError{Op: "marshal", Key: key, Err: err}
	}
	body = append(body, '\n')

	if _, err := w.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(w.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(ndjsonContentType),
	}); err != nil {
		return &storage.StorageError{Op: "put-object", Key: key, Err: err}
	}

	return nil
}

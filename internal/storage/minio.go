package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioStore(ctx context.Context, cfg config.Storage) (*MinioStore, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Minio.Bucket, err)
		}
		slog.Info("created minio bucket", "bucket", cfg.Minio.Bucket)
	}

	base := cfg.PublicURL
	if base == "" {
		protocol := "http"
		if cfg.Minio.UseSSL {
			protocol = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", protocol, cfg.Minio.Endpoint, cfg.Minio.Bucket)
	}

	return &MinioStore{client: client, bucket: cfg.Minio.Bucket, publicURL: base}, nil
}

func (m *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) (*Object, error) {
	info, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	return &Object{Key: info.Key, URL: publicURL(m.publicURL, info.Key)}, nil
}

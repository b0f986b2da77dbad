package storage

import (
	"context"
	"fmt"
	"strings"

	config "github.com/maheshrc27/autopost/configs"
)

// Object is a stored blob and the URL it can be fetched from.
type Object struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*Object, error)
}

// New returns the blob store selected by cfg.Storage.Driver.
func New(ctx context.Context, cfg config.Config) (BlobStore, error) {
	var (
		store BlobStore
		err   error
	)
	switch cfg.Storage.Driver {
	case "minio":
		store, err = NewMinioStore(ctx, cfg.Storage)
	case "r2":
		store, err = NewR2Store(ctx, cfg.Storage)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

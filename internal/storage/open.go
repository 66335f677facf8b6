package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/donaldgifford/bokdeok/internal/config"
)

// Closer is a KV that holds resources.
type Closer interface {
	KV
	io.Closer
}

type nopCloser struct{ KV }

func (nopCloser) Close() error { return nil }

// NopCloser wraps kv with a Close that does nothing.
func NopCloser(kv KV) Closer { return nopCloser{kv} }

// Open builds the KV selected by cfg.Driver.
func Open(ctx context.Context, cfg *config.StorageConfig) (Closer, error) {
	switch cfg.Driver {
	case config.StorageMemory:
		return nopCloser{NewMemory()}, nil
	case config.StorageFile:
		f, err := OpenFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		return nopCloser{f}, nil
	case config.StorageSQLite:
		return OpenSQLite(ctx, cfg.Path)
	case config.StoragePostgres:
		return OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Package storage holds the durable key-value slots tminus persists into.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchellh/go-homedir"

	"github.com/sandeepkv93/tminus/internal/config"
)

var ErrNotFound = errors.New("storage: not found")

// KV is a small string key-value store. Read reports ok=false for absent keys.
type KV interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the backend named by cfg.Store.
func Open(cfg config.Config) (KV, error) {
	switch cfg.Store {
	case config.StoreSQLite, "":
		path, err := homedir.Expand(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("expand db path: %w", err)
		}
		return OpenSQLite(path)
	case config.StoreDiskv:
		path, err := homedir.Expand(cfg.DiskvPath)
		if err != nil {
			return nil, fmt.Errorf("expand diskv path: %w", err)
		}
		return OpenDiskv(path)
	case config.StoreMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Store)
	}
}

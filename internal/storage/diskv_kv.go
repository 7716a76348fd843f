package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvKV keeps one file per key under a base directory.
type DiskvKV struct {
	d *diskv.Diskv
}

func OpenDiskv(basePath string) (*DiskvKV, error) {
	if basePath == "" {
		return nil, errors.New("storage: diskv base path is empty")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &DiskvKV{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 64 * 1024,
	})}, nil
}

func (k *DiskvKV) Read(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if !k.d.Has(key) {
		return "", false, nil
	}
	val, err := k.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(val), true, nil
}

func (k *DiskvKV) Write(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return k.d.Write(key, []byte(value))
}

func (k *DiskvKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !k.d.Has(key) {
		return ErrNotFound
	}
	return k.d.Erase(key)
}

func (k *DiskvKV) Close() error { return nil }

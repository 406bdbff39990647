// Package kv implements the persistence port: opaque snapshots loaded and saved by key.
package kv

import "context"

// Store loads and saves serialized snapshots. A missing key is reported with found=false.
type Store interface {
	Load(ctx context.Context, key string) (value []byte, found bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

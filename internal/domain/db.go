package domain

import "context"

// Database defines lifecycle operations for the underlying store.
// Each implementation owns its own schema migrations, so the backend
// can be swapped without touching the repositories' callers.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}

// FileStore abstracts raw image byte storage. The catalog keeps image
// bytes outside the relational store; the initial implementation writes
// plain files under the configured images directory.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mhalden/closet/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle and hands out the repositories bound to it.
// One DB is constructed at process start and owns the store for the
// lifetime of the process.
type DB struct {
	SqlDB *sql.DB
}

// New opens (creating if necessary) a SQLite database at the given path
// and configures it for use. The containing directory is created when
// missing. WAL mode and foreign key enforcement are enabled.
func New(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}

	// Single connection: SQLite allows one writer, and the pragmas above
	// are connection-scoped.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded schema migrations. Idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close closes the underlying database handle.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Images returns the image repository bound to this database.
func (db *DB) Images() *ImageRepository { return NewImageRepository(db) }

// Categories returns the category repository bound to this database.
func (db *DB) Categories() *CategoryRepository { return NewCategoryRepository(db) }

// Tags returns the tag repository bound to this database.
func (db *DB) Tags() *TagRepository { return NewTagRepository(db) }

// Outfits returns the outfit repository bound to this database.
func (db *DB) Outfits() *OutfitRepository { return NewOutfitRepository(db) }

// isUniqueConstraintError reports whether the error is a SQLite unique
// constraint violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && !errors.Is(err, sql.ErrNoRows) &&
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

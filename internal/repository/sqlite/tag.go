package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mhalden/closet/internal/domain"
)

// TagRepository implements domain.TagRepository using SQLite.
type TagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new SQLite-backed TagRepository.
func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db.SqlDB}
}

// GetOrCreate inserts the tag when the name is new, otherwise resolves
// the existing row.
func (r *TagRepository) GetOrCreate(ctx context.Context, tag *domain.Tag) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO tags (name, created_at) VALUES (?, ?)",
		tag.Name, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("insert tag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	created := rows > 0

	err = r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM tags WHERE name = ?", tag.Name,
	).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("query tag by name: %w", err)
	}
	return created, nil
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mhalden/closet/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using SQLite.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new SQLite-backed CategoryRepository.
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db.SqlDB}
}

// GetOrCreate inserts the category when the name is new, otherwise
// leaves the existing row untouched (its stored description wins).
// Either way the category is filled in from the resolved row.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, category *domain.Category) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO categories (name, description, created_at) VALUES (?, ?, ?)",
		category.Name, category.Description, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("insert category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	created := rows > 0

	err = r.db.QueryRowContext(ctx,
		"SELECT id, name, description, created_at FROM categories WHERE name = ?",
		category.Name,
	).Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("query category by name: %w", err)
	}
	return created, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

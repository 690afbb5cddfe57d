package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mhalden/closet/internal/domain"
)

// OutfitRepository implements domain.OutfitRepository using SQLite.
type OutfitRepository struct {
	db *sql.DB
}

// NewOutfitRepository creates a new SQLite-backed OutfitRepository.
func NewOutfitRepository(db *DB) *OutfitRepository {
	return &OutfitRepository{db: db.SqlDB}
}

func (r *OutfitRepository) Create(ctx context.Context, outfit *domain.Outfit) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO outfits (filename, file_path, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		outfit.Filename, outfit.FilePath, outfit.Description, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateFilename
		}
		return fmt.Errorf("insert outfit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	outfit.ID = id
	outfit.CreatedAt = now
	outfit.UpdatedAt = now
	return nil
}

func (r *OutfitRepository) GetByID(ctx context.Context, id int64) (*domain.Outfit, error) {
	outfit := &domain.Outfit{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, filename, file_path, description, created_at, updated_at
		 FROM outfits WHERE id = ?`, id,
	).Scan(&outfit.ID, &outfit.Filename, &outfit.FilePath, &outfit.Description,
		&outfit.CreatedAt, &outfit.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query outfit by id: %w", err)
	}

	if err := r.loadItems(ctx, outfit); err != nil {
		return nil, err
	}
	return outfit, nil
}

func (r *OutfitRepository) List(ctx context.Context) ([]domain.Outfit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, filename, file_path, description, created_at, updated_at
		 FROM outfits ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list outfits: %w", err)
	}
	defer rows.Close()

	outfits := []domain.Outfit{}
	for rows.Next() {
		var o domain.Outfit
		if err := rows.Scan(&o.ID, &o.Filename, &o.FilePath, &o.Description,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan outfit: %w", err)
		}
		outfits = append(outfits, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range outfits {
		if err := r.loadItems(ctx, &outfits[i]); err != nil {
			return nil, err
		}
	}
	return outfits, nil
}

func (r *OutfitRepository) UpdateDescription(ctx context.Context, id int64, description string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE outfits SET description = ?, updated_at = ? WHERE id = ?",
		description, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update outfit description: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OutfitRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM outfits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete outfit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OutfitRepository) AddItem(ctx context.Context, outfitID, imageID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO outfit_items (outfit_id, image_id, created_at) VALUES (?, ?, ?)",
		outfitID, imageID, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("insert outfit item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *OutfitRepository) RemoveItem(ctx context.Context, outfitID, imageID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM outfit_items WHERE outfit_id = ? AND image_id = ?",
		outfitID, imageID,
	)
	if err != nil {
		return false, fmt.Errorf("delete outfit item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}

// loadItems fills in the outfit's member images, oldest first. Shared
// by GetByID and List.
func (r *OutfitRepository) loadItems(ctx context.Context, outfit *domain.Outfit) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT i.id, i.filename, i.file_path, i.description, i.created_at, i.updated_at
		 FROM images i
		 JOIN outfit_items oi ON i.id = oi.image_id
		 WHERE oi.outfit_id = ?
		 ORDER BY i.created_at, i.id`, outfit.ID)
	if err != nil {
		return fmt.Errorf("load outfit items: %w", err)
	}
	defer rows.Close()

	outfit.Items = []domain.Image{}
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.Filename, &img.FilePath, &img.Description,
			&img.CreatedAt, &img.UpdatedAt); err != nil {
			return fmt.Errorf("scan outfit item: %w", err)
		}
		outfit.Items = append(outfit.Items, img)
	}
	return rows.Err()
}

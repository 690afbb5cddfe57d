package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mhalden/closet/internal/domain"
)

// ImageRepository implements domain.ImageRepository using SQLite.
type ImageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new SQLite-backed ImageRepository.
func NewImageRepository(db *DB) *ImageRepository {
	return &ImageRepository{db: db.SqlDB}
}

func (r *ImageRepository) Create(ctx context.Context, image *domain.Image) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO images (filename, file_path, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		image.Filename, image.FilePath, image.Description, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateFilename
		}
		return fmt.Errorf("insert image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	image.ID = id
	image.CreatedAt = now
	image.UpdatedAt = now
	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id int64) (*domain.Image, error) {
	img := &domain.Image{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, filename, file_path, description, created_at, updated_at
		 FROM images WHERE id = ?`, id,
	).Scan(&img.ID, &img.Filename, &img.FilePath, &img.Description, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query image by id: %w", err)
	}

	if err := r.loadAssociations(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (r *ImageRepository) List(ctx context.Context) ([]domain.Image, error) {
	return r.queryImages(ctx,
		`SELECT id, filename, file_path, description, created_at, updated_at
		 FROM images ORDER BY created_at DESC, id DESC`)
}

func (r *ImageRepository) SearchByCategory(ctx context.Context, name string) ([]domain.Image, error) {
	return r.queryImages(ctx,
		`SELECT DISTINCT i.id, i.filename, i.file_path, i.description, i.created_at, i.updated_at
		 FROM images i
		 JOIN image_categories ic ON i.id = ic.image_id
		 JOIN categories c ON ic.category_id = c.id
		 WHERE c.name = ?
		 ORDER BY i.created_at DESC, i.id DESC`, name)
}

func (r *ImageRepository) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM images WHERE filename = ?)", filename,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check image filename: %w", err)
	}
	return exists, nil
}

func (r *ImageRepository) UpdateDescription(ctx context.Context, id int64, description string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE images SET description = ?, updated_at = ? WHERE id = ?",
		description, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update image description: %w", err)
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

func (r *ImageRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM images WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
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

func (r *ImageRepository) AssignCategory(ctx context.Context, imageID, categoryID int64) (bool, error) {
	return r.assign(ctx,
		"INSERT OR IGNORE INTO image_categories (image_id, category_id, created_at) VALUES (?, ?, ?)",
		imageID, categoryID)
}

func (r *ImageRepository) AssignTag(ctx context.Context, imageID, tagID int64) (bool, error) {
	return r.assign(ctx,
		"INSERT OR IGNORE INTO image_tags (image_id, tag_id, created_at) VALUES (?, ?, ?)",
		imageID, tagID)
}

// assign inserts one association row. OR IGNORE absorbs the duplicate
// pair into a zero row count; foreign key violations still surface as
// errors.
func (r *ImageRepository) assign(ctx context.Context, query string, leftID, rightID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, leftID, rightID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("insert association: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}

// queryImages runs an image SELECT and eagerly loads categories and
// tags for every row.
func (r *ImageRepository) queryImages(ctx context.Context, query string, args ...any) ([]domain.Image, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query images: %w", err)
	}
	defer rows.Close()

	images := []domain.Image{}
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.Filename, &img.FilePath, &img.Description,
			&img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range images {
		if err := r.loadAssociations(ctx, &images[i]); err != nil {
			return nil, err
		}
	}
	return images, nil
}

// loadAssociations fills in the image's categories and tags. Shared by
// every fetch path so the enrichment cannot drift between them.
func (r *ImageRepository) loadAssociations(ctx context.Context, img *domain.Image) error {
	catRows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.description, c.created_at
		 FROM categories c
		 JOIN image_categories ic ON c.id = ic.category_id
		 WHERE ic.image_id = ?
		 ORDER BY c.name`, img.ID)
	if err != nil {
		return fmt.Errorf("load image categories: %w", err)
	}
	defer catRows.Close()

	img.Categories = []domain.Category{}
	for catRows.Next() {
		var c domain.Category
		if err := catRows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return fmt.Errorf("scan category: %w", err)
		}
		img.Categories = append(img.Categories, c)
	}
	if err := catRows.Err(); err != nil {
		return err
	}

	tagRows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.created_at
		 FROM tags t
		 JOIN image_tags it ON t.id = it.tag_id
		 WHERE it.image_id = ?
		 ORDER BY t.name`, img.ID)
	if err != nil {
		return fmt.Errorf("load image tags: %w", err)
	}
	defer tagRows.Close()

	img.Tags = []domain.Tag{}
	for tagRows.Next() {
		var t domain.Tag
		if err := tagRows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		img.Tags = append(img.Tags, t)
	}
	return tagRows.Err()
}

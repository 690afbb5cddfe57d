package domain

import (
	"context"
	"time"
)

// Image is one processed clothing-article photo. The bytes live on disk
// under Filename; the row only carries metadata and associations.
type Image struct {
	ID          int64
	Filename    string // unique across all images
	FilePath    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categories []Category
	Tags       []Tag
}

// Category is a reusable classification label such as "shirt".
type Category struct {
	ID          int64
	Name        string // unique
	Description string
	CreatedAt   time.Time
}

// Tag is a reusable free-form label.
type Tag struct {
	ID        int64
	Name      string // unique
	CreatedAt time.Time
}

// ImageRepository handles image persistence and its category/tag
// associations. Fetch operations return images with associations
// eagerly loaded.
type ImageRepository interface {
	// Create inserts a new image. Returns ErrDuplicateFilename when the
	// filename is already catalogued.
	Create(ctx context.Context, image *Image) error
	// GetByID returns the image with its categories and tags, or
	// ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Image, error)
	// List returns all images, newest first. Empty slice when the
	// catalog is empty.
	List(ctx context.Context) ([]Image, error)
	// SearchByCategory returns all images carrying the named category,
	// newest first. Unknown names yield an empty slice.
	SearchByCategory(ctx context.Context, name string) ([]Image, error)
	ExistsByFilename(ctx context.Context, filename string) (bool, error)
	// UpdateDescription overwrites the description and refreshes
	// updated_at. Returns ErrNotFound when the ID is absent.
	// Description is the only mutable field after creation.
	UpdateDescription(ctx context.Context, id int64, description string) error
	// Delete removes the image row; association rows go with it via
	// the store's cascade rules. Returns ErrNotFound when the ID is
	// absent.
	Delete(ctx context.Context, id int64) error
	// AssignCategory links a category to an image. Returns false when
	// the pair already exists.
	AssignCategory(ctx context.Context, imageID, categoryID int64) (bool, error)
	// AssignTag links a tag to an image. Returns false when the pair
	// already exists.
	AssignTag(ctx context.Context, imageID, tagID int64) (bool, error)
}

// CategoryRepository handles category persistence.
type CategoryRepository interface {
	// GetOrCreate resolves the category by name, inserting it when
	// absent. The category's ID and CreatedAt are filled in either way;
	// the returned bool reports whether a new row was created.
	GetOrCreate(ctx context.Context, category *Category) (bool, error)
	// List returns all categories in alphabetical order.
	List(ctx context.Context) ([]Category, error)
}

// TagRepository handles tag persistence.
type TagRepository interface {
	// GetOrCreate resolves the tag by name, inserting it when absent.
	GetOrCreate(ctx context.Context, tag *Tag) (bool, error)
	// List returns all tags in alphabetical order.
	List(ctx context.Context) ([]Tag, error)
}

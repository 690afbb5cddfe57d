package domain

import (
	"context"
	"time"
)

// Outfit is a named collection of catalogued images, itself backed by
// an image file (a photo of the assembled outfit).
type Outfit struct {
	ID          int64
	Filename    string // unique across all outfits
	FilePath    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []Image
}

// OutfitRepository handles outfit persistence and outfit membership.
type OutfitRepository interface {
	// Create inserts a new outfit. Returns ErrDuplicateFilename when
	// the filename is already taken by another outfit.
	Create(ctx context.Context, outfit *Outfit) error
	// GetByID returns the outfit with its member images, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Outfit, error)
	// List returns all outfits, newest first, each with its members.
	List(ctx context.Context) ([]Outfit, error)
	// UpdateDescription overwrites the description and refreshes
	// updated_at. Returns ErrNotFound when the ID is absent.
	UpdateDescription(ctx context.Context, id int64, description string) error
	// Delete removes the outfit row and, via cascade, its membership
	// rows. Returns ErrNotFound when the ID is absent.
	Delete(ctx context.Context, id int64) error
	// AddItem adds an image to an outfit. Returns false when the image
	// is already a member.
	AddItem(ctx context.Context, outfitID, imageID int64) (bool, error)
	// RemoveItem removes an image from an outfit. Returns false when
	// the image was not a member.
	RemoveItem(ctx context.Context, outfitID, imageID int64) (bool, error)
}

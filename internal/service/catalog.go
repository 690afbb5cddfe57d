package service

import (
	"context"
	"fmt"

	"github.com/mhalden/closet/internal/domain"
)

// CatalogService is the single entry point for catalog reads and
// writes. It validates inputs and orchestrates the repositories;
// handlers and CLI commands never touch a repository directly.
type CatalogService struct {
	images     domain.ImageRepository
	categories domain.CategoryRepository
	tags       domain.TagRepository
	outfits    domain.OutfitRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	images domain.ImageRepository,
	categories domain.CategoryRepository,
	tags domain.TagRepository,
	outfits domain.OutfitRepository,
) *CatalogService {
	return &CatalogService{images: images, categories: categories, tags: tags, outfits: outfits}
}

// AddImage catalogs a new processed image.
func (s *CatalogService) AddImage(ctx context.Context, filename, filePath, description string) (*domain.Image, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}

	img := &domain.Image{Filename: filename, FilePath: filePath, Description: description}
	if err := s.images.Create(ctx, img); err != nil {
		return nil, err
	}
	img.Categories = []domain.Category{}
	img.Tags = []domain.Tag{}
	return img, nil
}

// GetImage returns an image with its categories and tags.
func (s *CatalogService) GetImage(ctx context.Context, id int64) (*domain.Image, error) {
	return s.images.GetByID(ctx, id)
}

// ListImages returns every image, newest first.
func (s *CatalogService) ListImages(ctx context.Context) ([]domain.Image, error) {
	return s.images.List(ctx)
}

// SearchImages returns the images carrying the named category.
func (s *CatalogService) SearchImages(ctx context.Context, category string) ([]domain.Image, error) {
	return s.images.SearchByCategory(ctx, category)
}

// UpdateImageDescription overwrites an image's description.
func (s *CatalogService) UpdateImageDescription(ctx context.Context, id int64, description string) error {
	return s.images.UpdateDescription(ctx, id, description)
}

// RemoveImage deletes an image and its associations.
func (s *CatalogService) RemoveImage(ctx context.Context, id int64) error {
	return s.images.Delete(ctx, id)
}

// AddCategory resolves a category by name, creating it when absent.
func (s *CatalogService) AddCategory(ctx context.Context, name, description string) (*domain.Category, bool, error) {
	if name == "" {
		return nil, false, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}

	c := &domain.Category{Name: name, Description: description}
	created, err := s.categories.GetOrCreate(ctx, c)
	if err != nil {
		return nil, false, err
	}
	return c, created, nil
}

// AddTag resolves a tag by name, creating it when absent.
func (s *CatalogService) AddTag(ctx context.Context, name string) (*domain.Tag, bool, error) {
	if name == "" {
		return nil, false, fmt.Errorf("%w: tag name is required", domain.ErrInvalidInput)
	}

	t := &domain.Tag{Name: name}
	created, err := s.tags.GetOrCreate(ctx, t)
	if err != nil {
		return nil, false, err
	}
	return t, created, nil
}

// ListCategories returns all categories in alphabetical order.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// ListTags returns all tags in alphabetical order.
func (s *CatalogService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

// CategorizeImage resolves the named category (creating it when
// absent) and assigns it to the image. The returned bool reports
// whether a new association was made; assigning an already-assigned
// category is a no-op, not an error.
func (s *CatalogService) CategorizeImage(ctx context.Context, imageID int64, name, description string) (*domain.Category, bool, error) {
	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		return nil, false, err
	}

	c, _, err := s.AddCategory(ctx, name, description)
	if err != nil {
		return nil, false, err
	}

	assigned, err := s.images.AssignCategory(ctx, imageID, c.ID)
	if err != nil {
		return nil, false, fmt.Errorf("assign category: %w", err)
	}
	return c, assigned, nil
}

// TagImage resolves the named tag (creating it when absent) and
// assigns it to the image.
func (s *CatalogService) TagImage(ctx context.Context, imageID int64, name string) (*domain.Tag, bool, error) {
	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		return nil, false, err
	}

	t, _, err := s.AddTag(ctx, name)
	if err != nil {
		return nil, false, err
	}

	assigned, err := s.images.AssignTag(ctx, imageID, t.ID)
	if err != nil {
		return nil, false, fmt.Errorf("assign tag: %w", err)
	}
	return t, assigned, nil
}

// AddOutfit catalogs a new outfit.
func (s *CatalogService) AddOutfit(ctx context.Context, filename, filePath, description string) (*domain.Outfit, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}

	outfit := &domain.Outfit{Filename: filename, FilePath: filePath, Description: description}
	if err := s.outfits.Create(ctx, outfit); err != nil {
		return nil, err
	}
	outfit.Items = []domain.Image{}
	return outfit, nil
}

// GetOutfit returns an outfit with its member images.
func (s *CatalogService) GetOutfit(ctx context.Context, id int64) (*domain.Outfit, error) {
	return s.outfits.GetByID(ctx, id)
}

// ListOutfits returns every outfit, newest first.
func (s *CatalogService) ListOutfits(ctx context.Context) ([]domain.Outfit, error) {
	return s.outfits.List(ctx)
}

// UpdateOutfitDescription overwrites an outfit's description.
func (s *CatalogService) UpdateOutfitDescription(ctx context.Context, id int64, description string) error {
	return s.outfits.UpdateDescription(ctx, id, description)
}

// RemoveOutfit deletes an outfit and its membership rows.
func (s *CatalogService) RemoveOutfit(ctx context.Context, id int64) error {
	return s.outfits.Delete(ctx, id)
}

// AddItemToOutfit adds an image to an outfit after checking both
// exist, so a missing ID surfaces as ErrNotFound rather than a
// foreign key failure.
func (s *CatalogService) AddItemToOutfit(ctx context.Context, outfitID, imageID int64) (bool, error) {
	if _, err := s.outfits.GetByID(ctx, outfitID); err != nil {
		return false, err
	}
	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		return false, err
	}
	return s.outfits.AddItem(ctx, outfitID, imageID)
}

// RemoveItemFromOutfit removes an image from an outfit. Removing an
// image that was not a member returns false, never an error.
func (s *CatalogService) RemoveItemFromOutfit(ctx context.Context, outfitID, imageID int64) (bool, error) {
	if _, err := s.outfits.GetByID(ctx, outfitID); err != nil {
		return false, err
	}
	return s.outfits.RemoveItem(ctx, outfitID, imageID)
}

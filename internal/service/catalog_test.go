package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mhalden/closet/internal/domain"
	"github.com/mhalden/closet/internal/repository/sqlite"
	"github.com/mhalden/closet/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *service.CatalogService {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	return service.NewCatalogService(db.Images(), db.Categories(), db.Tags(), db.Outfits())
}

func TestCatalogAddImage(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	img, err := svc.AddImage(ctx, "shirt1.png", "images/output/shirt1.png", "a shirt")
	require.NoError(t, err)
	assert.NotZero(t, img.ID)
	assert.NotNil(t, img.Categories)
	assert.NotNil(t, img.Tags)

	_, err = svc.AddImage(ctx, "shirt1.png", "", "")
	assert.ErrorIs(t, err, domain.ErrDuplicateFilename)

	_, err = svc.AddImage(ctx, "", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogCategorizeImage(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	img, err := svc.AddImage(ctx, "shirt1.png", "", "")
	require.NoError(t, err)

	cat, assigned, err := svc.CategorizeImage(ctx, img.ID, "shirts", "upper body")
	require.NoError(t, err)
	assert.True(t, assigned)
	assert.Equal(t, "shirts", cat.Name)

	// Same category again: resolved, but not newly assigned.
	cat2, assigned, err := svc.CategorizeImage(ctx, img.ID, "shirts", "")
	require.NoError(t, err)
	assert.False(t, assigned)
	assert.Equal(t, cat.ID, cat2.ID)

	got, err := svc.GetImage(ctx, img.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "shirts", got.Categories[0].Name)
}

func TestCatalogCategorizeMissingImage(t *testing.T) {
	svc := newTestCatalog(t)

	_, _, err := svc.CategorizeImage(context.Background(), 999, "shirts", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The category must not be created as a side effect.
	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCatalogTagImage(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	img, err := svc.AddImage(ctx, "shirt1.png", "", "")
	require.NoError(t, err)

	tag, assigned, err := svc.TagImage(ctx, img.ID, "summer")
	require.NoError(t, err)
	assert.True(t, assigned)
	assert.Equal(t, "summer", tag.Name)

	_, _, err = svc.TagImage(ctx, img.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogSearchImages(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	shirt, err := svc.AddImage(ctx, "shirt1.png", "", "")
	require.NoError(t, err)
	_, err = svc.AddImage(ctx, "pants1.png", "", "")
	require.NoError(t, err)

	_, _, err = svc.CategorizeImage(ctx, shirt.ID, "shirts", "")
	require.NoError(t, err)

	images, err := svc.SearchImages(ctx, "shirts")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, shirt.ID, images[0].ID)

	none, err := svc.SearchImages(ctx, "hats")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCatalogAddCategoryIdempotent(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	cat, created, err := svc.AddCategory(ctx, "shirts", "upper body")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.AddCategory(ctx, "shirts", "different description")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, cat.ID, again.ID)
	assert.Equal(t, "upper body", again.Description)
}

func TestCatalogOutfits(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	outfit, err := svc.AddOutfit(ctx, "friday.png", "images/output/friday.png", "casual friday")
	require.NoError(t, err)
	assert.NotZero(t, outfit.ID)
	assert.NotNil(t, outfit.Items)

	shirt, err := svc.AddImage(ctx, "shirt1.png", "", "")
	require.NoError(t, err)

	added, err := svc.AddItemToOutfit(ctx, outfit.ID, shirt.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddItemToOutfit(ctx, outfit.ID, shirt.ID)
	require.NoError(t, err)
	assert.False(t, added)

	got, err := svc.GetOutfit(ctx, outfit.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, shirt.ID, got.Items[0].ID)

	removed, err := svc.RemoveItemFromOutfit(ctx, outfit.ID, shirt.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveItemFromOutfit(ctx, outfit.ID, shirt.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCatalogAddItemMissingIDs(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	outfit, err := svc.AddOutfit(ctx, "friday.png", "", "")
	require.NoError(t, err)

	_, err = svc.AddItemToOutfit(ctx, 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddItemToOutfit(ctx, outfit.ID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.RemoveItemFromOutfit(ctx, 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogUpdateDescriptions(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	img, err := svc.AddImage(ctx, "shirt1.png", "", "old")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateImageDescription(ctx, img.ID, "new"))

	got, err := svc.GetImage(ctx, img.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Description)

	assert.ErrorIs(t, svc.UpdateImageDescription(ctx, 999, "x"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.UpdateOutfitDescription(ctx, 999, "x"), domain.ErrNotFound)
}

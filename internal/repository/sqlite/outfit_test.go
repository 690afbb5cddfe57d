package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mhalden/closet/internal/domain"
	"github.com/mhalden/closet/internal/repository/sqlite"
)

func createTestOutfit(t *testing.T, repo *sqlite.OutfitRepository, filename string) *domain.Outfit {
	t.Helper()

	outfit := &domain.Outfit{
		Filename: filename,
		FilePath: "images/output/" + filename,
	}
	if err := repo.Create(context.Background(), outfit); err != nil {
		t.Fatalf("Create(%s) error = %v", filename, err)
	}
	return outfit
}

func TestOutfitCreate(t *testing.T) {
	db := newTestDB(t)

	outfit := createTestOutfit(t, db.Outfits(), "friday.png")
	if outfit.ID == 0 {
		t.Error("Create() did not set ID")
	}

	err := db.Outfits().Create(context.Background(), &domain.Outfit{Filename: "friday.png"})
	if !errors.Is(err, domain.ErrDuplicateFilename) {
		t.Errorf("duplicate Create() error = %v, want ErrDuplicateFilename", err)
	}
}

func TestOutfitGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Outfits().GetByID(context.Background(), 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestOutfitItems(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	outfit := createTestOutfit(t, db.Outfits(), "friday.png")
	shirt := createTestImage(t, db.Images(), "shirt1.png")
	pants := createTestImage(t, db.Images(), "pants1.png")

	for _, img := range []*domain.Image{shirt, pants} {
		added, err := db.Outfits().AddItem(ctx, outfit.ID, img.ID)
		if err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
		if !added {
			t.Errorf("AddItem(%s) = false, want true", img.Filename)
		}
	}

	// Re-adding is a no-op.
	added, err := db.Outfits().AddItem(ctx, outfit.ID, shirt.ID)
	if err != nil {
		t.Fatalf("repeat AddItem() error = %v", err)
	}
	if added {
		t.Error("repeat AddItem() = true, want false")
	}

	got, err := db.Outfits().GetByID(ctx, outfit.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("Items count = %d, want 2", len(got.Items))
	}
	// Oldest first.
	if got.Items[0].ID != shirt.ID || got.Items[1].ID != pants.ID {
		t.Errorf("Items = [%d %d], want [%d %d]",
			got.Items[0].ID, got.Items[1].ID, shirt.ID, pants.ID)
	}
}

func TestOutfitSharedImage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := createTestOutfit(t, db.Outfits(), "a.png")
	b := createTestOutfit(t, db.Outfits(), "b.png")
	shirt := createTestImage(t, db.Images(), "shirt1.png")

	for _, o := range []*domain.Outfit{a, b} {
		if _, err := db.Outfits().AddItem(ctx, o.ID, shirt.ID); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
	}

	removed, err := db.Outfits().RemoveItem(ctx, a.ID, shirt.ID)
	if err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if !removed {
		t.Error("RemoveItem() = false, want true")
	}

	// Membership in the other outfit is untouched.
	gotB, err := db.Outfits().GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(gotB.Items) != 1 {
		t.Errorf("outfit b items = %d, want 1", len(gotB.Items))
	}

	// So is the image itself.
	if _, err := db.Images().GetByID(ctx, shirt.ID); err != nil {
		t.Errorf("image gone after outfit removal: %v", err)
	}
}

func TestOutfitRemoveNonMember(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	outfit := createTestOutfit(t, db.Outfits(), "friday.png")
	shirt := createTestImage(t, db.Images(), "shirt1.png")

	removed, err := db.Outfits().RemoveItem(ctx, outfit.ID, shirt.ID)
	if err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if removed {
		t.Error("RemoveItem() of non-member = true, want false")
	}
}

func TestOutfitDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	outfit := createTestOutfit(t, db.Outfits(), "friday.png")
	shirt := createTestImage(t, db.Images(), "shirt1.png")
	if _, err := db.Outfits().AddItem(ctx, outfit.ID, shirt.ID); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if err := db.Outfits().Delete(ctx, outfit.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := db.Outfits().GetByID(ctx, outfit.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	// Membership rows cascade; the member image survives.
	var count int
	err := db.SqlDB.QueryRow("SELECT COUNT(*) FROM outfit_items WHERE outfit_id = ?", outfit.ID).Scan(&count)
	if err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 0 {
		t.Errorf("membership rows after delete = %d, want 0", count)
	}
	if _, err := db.Images().GetByID(ctx, shirt.ID); err != nil {
		t.Errorf("member image gone after outfit delete: %v", err)
	}

	err = db.Outfits().Delete(ctx, 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete(999) error = %v, want ErrNotFound", err)
	}
}

func TestOutfitUpdateDescription(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	outfit := createTestOutfit(t, db.Outfits(), "friday.png")

	if err := db.Outfits().UpdateDescription(ctx, outfit.ID, "casual friday"); err != nil {
		t.Fatalf("UpdateDescription() error = %v", err)
	}

	got, err := db.Outfits().GetByID(ctx, outfit.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Description != "casual friday" {
		t.Errorf("Description = %q, want %q", got.Description, "casual friday")
	}

	err = db.Outfits().UpdateDescription(ctx, 999, "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateDescription(999) error = %v, want ErrNotFound", err)
	}
}

func TestOutfitList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	empty, err := db.Outfits().List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("List() on empty table = %v, want empty slice", empty)
	}

	createTestOutfit(t, db.Outfits(), "a.png")
	createTestOutfit(t, db.Outfits(), "b.png")

	outfits, err := db.Outfits().List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(outfits) != 2 {
		t.Fatalf("List() returned %d outfits, want 2", len(outfits))
	}
	if outfits[0].Items == nil {
		t.Error("List() returned nil Items slice")
	}
}

package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mhalden/closet/internal/domain"
	"github.com/mhalden/closet/internal/storage"
)

func newTestStore(t *testing.T) *storage.DiskStore {
	t.Helper()

	store, err := storage.NewDiskStore(filepath.Join(t.TempDir(), "images"))
	if err != nil {
		t.Fatalf("storage.NewDiskStore() error = %v", err)
	}
	return store
}

func TestDiskStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data := []byte("fake png bytes")
	if err := store.Save(ctx, "shirt1.png", data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, "shirt1.png")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Get() = %q, want %q", got, data)
	}
}

func TestDiskStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing.png")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestDiskStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "shirt1.png", []byte("data")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete(ctx, "shirt1.png"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "shirt1.png"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting a missing file is fine.
	if err := store.Delete(ctx, "shirt1.png"); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestDiskStoreRejectsPathTraversal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"", "../escape.png", "sub/dir.png", "/etc/passwd"} {
		if err := store.Save(ctx, name, []byte("data")); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Save(%q) error = %v, want ErrInvalidInput", name, err)
		}
		if _, err := store.Get(ctx, name); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Get(%q) error = %v, want ErrInvalidInput", name, err)
		}
	}
}

func TestNewDiskStoreCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "images")
	if _, err := storage.NewDiskStore(root); err != nil {
		t.Fatalf("storage.NewDiskStore() error = %v", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		t.Fatalf("stat root: %v", err)
	}
	if !info.IsDir() {
		t.Error("root is not a directory")
	}
}

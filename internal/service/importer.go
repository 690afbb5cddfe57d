package service

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mhalden/closet/internal/domain"
)

// ImportService reconciles the images table with the processed image
// files present on disk.
type ImportService struct {
	images domain.ImageRepository
}

// NewImportService creates a new ImportService.
func NewImportService(images domain.ImageRepository) *ImportService {
	return &ImportService{images: images}
}

// ReconcileResult summarizes one reconciliation pass.
type ReconcileResult struct {
	Scanned    int // image files seen in the directory
	Candidates int // files with no matching catalog row
	Added      int // rows inserted (only when apply is set)
}

// Reconcile scans dir (non-recursively) for image files and reports
// the ones missing from the catalog. With apply set, the missing
// files are inserted; otherwise this is a dry run. A missing
// directory is treated as empty.
func (s *ImportService) Reconcile(ctx context.Context, dir string, apply bool) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		result.Scanned++

		exists, err := s.images.ExistsByFilename(ctx, entry.Name())
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		result.Candidates++

		if !apply {
			continue
		}

		img := &domain.Image{
			Filename: entry.Name(),
			FilePath: filepath.Join(dir, entry.Name()),
		}
		if err := s.images.Create(ctx, img); err != nil {
			return nil, err
		}
		result.Added++
		slog.Info("image imported", "filename", img.Filename, "id", img.ID)
	}

	slog.Info("reconcile finished",
		"dir", dir, "apply", apply,
		"scanned", result.Scanned, "candidates", result.Candidates, "added", result.Added)
	return result, nil
}

// isImageFile reports whether the filename has a still-image extension.
func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

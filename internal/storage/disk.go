// Package storage provides the disk-backed implementation of
// domain.FileStore. Image bytes stay as ordinary files in the images
// directory; the relational store only references them by filename.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mhalden/closet/internal/domain"
)

// DiskStore stores files under a single root directory. Names must be
// bare filenames; anything that would escape the root is rejected.
type DiskStore struct {
	root string
}

var _ domain.FileStore = (*DiskStore)(nil)

// NewDiskStore creates the root directory if needed and returns a
// store rooted there.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Root returns the directory the store writes into.
func (s *DiskStore) Root() string { return s.root }

func (s *DiskStore) Save(ctx context.Context, name string, data []byte) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *DiskStore) Get(ctx context.Context, name string) ([]byte, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (s *DiskStore) Delete(ctx context.Context, name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *DiskStore) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: invalid file name %q", domain.ErrInvalidInput, name)
	}
	return filepath.Join(s.root, name), nil
}

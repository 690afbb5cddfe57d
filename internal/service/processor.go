package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mhalden/closet/internal/domain"
	"github.com/mhalden/closet/internal/genimage"
)

// ArticleExtractor is the slice of the generative-image client the
// processor needs.
type ArticleExtractor interface {
	ExtractArticle(ctx context.Context, article, mimeType string, photo []byte) ([]byte, error)
}

// ProcessService runs source photos through the generative-image API
// and saves the cropped article images into the output file store. It
// never touches the catalog; `reconcile` aligns the store with the
// output directory afterwards.
type ProcessService struct {
	extractor ArticleExtractor
	output    domain.FileStore
}

// NewProcessService creates a new ProcessService writing results into
// the given file store.
func NewProcessService(extractor ArticleExtractor, output domain.FileStore) *ProcessService {
	return &ProcessService{extractor: extractor, output: output}
}

// ProcessOptions configures one batch run.
type ProcessOptions struct {
	Article    string
	InputDir   string
	InputFile  string // when set, process just this file
	ArchiveDir string
	Archive    bool
}

// ProcessResult summarizes one batch run.
type ProcessResult struct {
	Processed int // photos sent to the model
	Saved     int // article images written
	Skipped   int // photos the model returned no image for
	Archived  int // source photos moved to the archive
}

// Run processes every input photo. A photo the model finds no article
// in is skipped and counted; any other failure aborts the run.
func (s *ProcessService) Run(ctx context.Context, opts ProcessOptions) (*ProcessResult, error) {
	if opts.Article == "" {
		return nil, fmt.Errorf("%w: article is required", domain.ErrInvalidInput)
	}

	inputs, err := inputFiles(opts.InputDir, opts.InputFile)
	if err != nil {
		return nil, err
	}

	result := &ProcessResult{}
	if len(inputs) == 0 {
		slog.Info("no input photos found", "dir", opts.InputDir)
		return result, nil
	}

	if opts.Archive {
		if err := os.MkdirAll(opts.ArchiveDir, 0o755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}

	for _, input := range inputs {
		photo, err := os.ReadFile(input)
		if err != nil {
			return result, fmt.Errorf("read input %s: %w", input, err)
		}

		slog.Info("processing photo", "file", filepath.Base(input), "article", opts.Article)
		result.Processed++

		image, err := s.extractor.ExtractArticle(ctx, opts.Article, http.DetectContentType(photo), photo)
		if err != nil {
			if errors.Is(err, genimage.ErrNoImage) {
				slog.Warn("model returned no image", "file", filepath.Base(input))
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("extract article from %s: %w", input, err)
		}

		outName := outputFilename(input, opts.Article)
		if err := s.output.Save(ctx, outName, image); err != nil {
			return result, fmt.Errorf("save %s: %w", outName, err)
		}
		result.Saved++
		slog.Info("saved article image", "file", outName)

		if opts.Archive {
			dest := filepath.Join(opts.ArchiveDir, filepath.Base(input))
			if err := os.Rename(input, dest); err != nil {
				return result, fmt.Errorf("archive %s: %w", input, err)
			}
			result.Archived++
			slog.Info("archived photo", "file", filepath.Base(input))
		}
	}

	return result, nil
}

// outputFilename derives "<stem> - <article>.png" from the input path.
func outputFilename(input, article string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s - %s.png", stem, article)
}

// inputFiles returns the photos to process: the single file when one
// is given, otherwise every image file directly under dir, sorted.
func inputFiles(dir, file string) ([]string, error) {
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("input file: %w", err)
		}
		return []string{file}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

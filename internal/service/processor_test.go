package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mhalden/closet/internal/domain"
	"github.com/mhalden/closet/internal/genimage"
	"github.com/mhalden/closet/internal/service"
	"github.com/mhalden/closet/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns canned results per input filename stem.
type fakeExtractor struct {
	result []byte
	err    error
	calls  int
}

func (f *fakeExtractor) ExtractArticle(ctx context.Context, article, mimeType string, photo []byte) ([]byte, error) {
	f.calls++
	return f.result, f.err
}

func newTestProcessor(t *testing.T, extractor service.ArticleExtractor) (*service.ProcessService, string) {
	t.Helper()

	outDir := filepath.Join(t.TempDir(), "output")
	output, err := storage.NewDiskStore(outDir)
	require.NoError(t, err)
	return service.NewProcessService(extractor, output), outDir
}

func TestProcessRun(t *testing.T) {
	extractor := &fakeExtractor{result: []byte("cropped")}
	proc, outDir := newTestProcessor(t, extractor)

	inputDir := t.TempDir()
	writeTestFiles(t, inputDir, "vacation.jpg", "beach.PNG", "readme.md")

	res, err := proc.Run(context.Background(), service.ProcessOptions{
		Article:  "shirt",
		InputDir: inputDir,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 2, res.Saved)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 0, res.Archived)
	assert.Equal(t, 2, extractor.calls)

	// Output names are "<stem> - <article>.png", regardless of the
	// input extension's case.
	for _, name := range []string{"vacation - shirt.png", "beach - shirt.png"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, "cropped", string(data))
	}
}

func TestProcessRunSingleFile(t *testing.T) {
	extractor := &fakeExtractor{result: []byte("cropped")}
	proc, _ := newTestProcessor(t, extractor)

	inputDir := t.TempDir()
	writeTestFiles(t, inputDir, "one.png", "two.png")

	res, err := proc.Run(context.Background(), service.ProcessOptions{
		Article:   "shirt",
		InputFile: filepath.Join(inputDir, "one.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, extractor.calls)
}

func TestProcessRunSkipsNoImage(t *testing.T) {
	extractor := &fakeExtractor{err: genimage.ErrNoImage}
	proc, _ := newTestProcessor(t, extractor)

	inputDir := t.TempDir()
	writeTestFiles(t, inputDir, "vacation.jpg")

	res, err := proc.Run(context.Background(), service.ProcessOptions{
		Article:  "shirt",
		InputDir: inputDir,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 0, res.Saved)
	assert.Equal(t, 1, res.Skipped)
}

func TestProcessRunAbortsOnAPIError(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("boom")}
	proc, _ := newTestProcessor(t, extractor)

	inputDir := t.TempDir()
	writeTestFiles(t, inputDir, "vacation.jpg")

	_, err := proc.Run(context.Background(), service.ProcessOptions{
		Article:  "shirt",
		InputDir: inputDir,
	})
	require.Error(t, err)
}

func TestProcessRunArchives(t *testing.T) {
	extractor := &fakeExtractor{result: []byte("cropped")}
	proc, _ := newTestProcessor(t, extractor)

	inputDir := t.TempDir()
	archiveDir := filepath.Join(t.TempDir(), "archive")
	writeTestFiles(t, inputDir, "vacation.jpg")

	res, err := proc.Run(context.Background(), service.ProcessOptions{
		Article:    "shirt",
		InputDir:   inputDir,
		ArchiveDir: archiveDir,
		Archive:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Archived)

	// The source moved, keeping its original name and extension.
	assert.NoFileExists(t, filepath.Join(inputDir, "vacation.jpg"))
	assert.FileExists(t, filepath.Join(archiveDir, "vacation.jpg"))
}

func TestProcessRunRequiresArticle(t *testing.T) {
	proc, _ := newTestProcessor(t, &fakeExtractor{})

	_, err := proc.Run(context.Background(), service.ProcessOptions{InputDir: t.TempDir()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessRunEmptyDirectory(t *testing.T) {
	extractor := &fakeExtractor{}
	proc, _ := newTestProcessor(t, extractor)

	res, err := proc.Run(context.Background(), service.ProcessOptions{
		Article:  "shirt",
		InputDir: t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Processed)
	assert.Equal(t, 0, extractor.calls)
}

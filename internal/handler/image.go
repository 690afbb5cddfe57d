package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/mhalden/closet/internal/domain"
	"github.com/mhalden/closet/internal/service"
)

const maxUploadSize = 20 << 20 // 20MB

// ImageHandler handles catalogued image CRUD, file serving, and
// category/tag assignment.
type ImageHandler struct {
	catalog   *service.CatalogService
	files     domain.FileStore
	imagesDir string
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(catalog *service.CatalogService, files domain.FileStore, imagesDir string) *ImageHandler {
	return &ImageHandler{catalog: catalog, files: files, imagesDir: imagesDir}
}

// HandleList returns all images, or only those in a category when the
// category query parameter is present.
// GET /api/images[?category=name]
func (h *ImageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var (
		images []domain.Image
		err    error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		images, err = h.catalog.SearchImages(r.Context(), category)
	} else {
		images, err = h.catalog.ListImages(r.Context())
	}
	if err != nil {
		slog.Error("list images", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toImageDTOs(images))
}

// HandleUpload stores an uploaded image file and catalogs it.
// POST /api/images (multipart: file, description)
func (h *ImageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no image file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("read upload", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Detect content type from file bytes (more reliable than multipart header).
	contentType := http.DetectContentType(data)
	if contentType != "image/png" && contentType != "image/jpeg" {
		writeError(w, http.StatusBadRequest, "only PNG and JPEG images are accepted")
		return
	}

	filename := filepath.Base(header.Filename)
	img, err := h.catalog.AddImage(r.Context(), filename,
		filepath.Join(h.imagesDir, filename), r.FormValue("description"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateFilename):
			writeError(w, http.StatusConflict, "an image with that filename already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("add image", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	if err := h.files.Save(r.Context(), filename, data); err != nil {
		slog.Error("save image file", "filename", filename, "error", err)
		// Roll back the row so the filename stays retryable.
		if derr := h.catalog.RemoveImage(r.Context(), img.ID); derr != nil {
			slog.Error("remove image after failed save", "id", img.ID, "error", derr)
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toImageDTO(img))
}

// HandleGet returns one image with its categories and tags.
// GET /api/images/{id}
func (h *ImageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	img, err := h.catalog.GetImage(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "image not found")
			return
		}
		slog.Error("get image", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toImageDTO(img))
}

// HandleServeFile serves the image bytes with the correct Content-Type.
// GET /api/images/{id}/file
func (h *ImageHandler) HandleServeFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	img, err := h.catalog.GetImage(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "image not found")
			return
		}
		slog.Error("get image", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	data, err := h.files.Get(r.Context(), img.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "image file missing from disk")
			return
		}
		slog.Error("read image file", "filename", img.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(img.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// HandleUpdateDescription overwrites the image's description.
// PATCH /api/images/{id}
func (h *ImageHandler) HandleUpdateDescription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.catalog.UpdateImageDescription(r.Context(), id, req.Description); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "image not found")
			return
		}
		slog.Error("update image description", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// HandleAssignCategory assigns a category (created on demand) to an image.
// POST /api/images/{id}/categories
func (h *ImageHandler) HandleAssignCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, assigned, err := h.catalog.CategorizeImage(r.Context(), id, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "image not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("categorize image", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"category": toCategoryDTO(*category),
		"assigned": assigned,
	})
}

// HandleAssignTag assigns a tag (created on demand) to an image.
// POST /api/images/{id}/tags
func (h *ImageHandler) HandleAssignTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tag, assigned, err := h.catalog.TagImage(r.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "image not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("tag image", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tag":      toTagDTO(*tag),
		"assigned": assigned,
	})
}

// contentTypeFor maps an image filename to its MIME type.
func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}

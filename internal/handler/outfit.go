package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/mhalden/closet/internal/domain"
	"github.com/mhalden/closet/internal/service"
)

// OutfitHandler handles outfit CRUD and membership. Outfit photos get
// their own store: image and outfit filenames are unique per table
// only, so sharing a directory with article images would let an
// upload on one side clobber the other's file.
type OutfitHandler struct {
	catalog    *service.CatalogService
	files      domain.FileStore
	outfitsDir string
}

// NewOutfitHandler creates a new OutfitHandler.
func NewOutfitHandler(catalog *service.CatalogService, files domain.FileStore, outfitsDir string) *OutfitHandler {
	return &OutfitHandler{catalog: catalog, files: files, outfitsDir: outfitsDir}
}

// HandleList returns all outfits with their member images.
// GET /api/outfits
func (h *OutfitHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	outfits, err := h.catalog.ListOutfits(r.Context())
	if err != nil {
		slog.Error("list outfits", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toOutfitDTOs(outfits))
}

// HandleUpload stores an uploaded outfit photo and catalogs the outfit.
// POST /api/outfits (multipart: file, description)
func (h *OutfitHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
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

	contentType := http.DetectContentType(data)
	if contentType != "image/png" && contentType != "image/jpeg" {
		writeError(w, http.StatusBadRequest, "only PNG and JPEG images are accepted")
		return
	}

	filename := filepath.Base(header.Filename)
	outfit, err := h.catalog.AddOutfit(r.Context(), filename,
		filepath.Join(h.outfitsDir, filename), r.FormValue("description"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateFilename):
			writeError(w, http.StatusConflict, "an outfit with that filename already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("add outfit", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	if err := h.files.Save(r.Context(), filename, data); err != nil {
		slog.Error("save outfit file", "filename", filename, "error", err)
		// Roll back the row so the filename stays retryable.
		if derr := h.catalog.RemoveOutfit(r.Context(), outfit.ID); derr != nil {
			slog.Error("remove outfit after failed save", "id", outfit.ID, "error", derr)
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toOutfitDTO(outfit))
}

// HandleGet returns one outfit with its member images.
// GET /api/outfits/{id}
func (h *OutfitHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outfit id")
		return
	}

	outfit, err := h.catalog.GetOutfit(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "outfit not found")
			return
		}
		slog.Error("get outfit", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toOutfitDTO(outfit))
}

// HandleServeFile serves the outfit photo bytes with the correct Content-Type.
// GET /api/outfits/{id}/file
func (h *OutfitHandler) HandleServeFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outfit id")
		return
	}

	outfit, err := h.catalog.GetOutfit(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "outfit not found")
			return
		}
		slog.Error("get outfit", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	data, err := h.files.Get(r.Context(), outfit.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "outfit file missing from disk")
			return
		}
		slog.Error("read outfit file", "filename", outfit.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(outfit.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// HandleUpdateDescription overwrites the outfit's description.
// PATCH /api/outfits/{id}
func (h *OutfitHandler) HandleUpdateDescription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outfit id")
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.catalog.UpdateOutfitDescription(r.Context(), id, req.Description); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "outfit not found")
			return
		}
		slog.Error("update outfit description", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// HandleAddItem adds an image to an outfit. Adding an image that is
// already a member reports added=false.
// PUT /api/outfits/{id}/items/{imageID}
func (h *OutfitHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	outfitID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outfit id")
		return
	}
	imageID, err := pathID(r, "imageID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	added, err := h.catalog.AddItemToOutfit(r.Context(), outfitID, imageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "outfit or image not found")
			return
		}
		slog.Error("add outfit item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

// HandleRemoveItem removes an image from an outfit. Removing an image
// that was not a member reports removed=false.
// DELETE /api/outfits/{id}/items/{imageID}
func (h *OutfitHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	outfitID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outfit id")
		return
	}
	imageID, err := pathID(r, "imageID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	removed, err := h.catalog.RemoveItemFromOutfit(r.Context(), outfitID, imageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "outfit not found")
			return
		}
		slog.Error("remove outfit item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

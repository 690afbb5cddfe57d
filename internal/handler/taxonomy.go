package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mhalden/closet/internal/domain"
	"github.com/mhalden/closet/internal/service"
)

// TaxonomyHandler handles the reusable labels: categories and tags.
type TaxonomyHandler struct {
	catalog *service.CatalogService
}

// NewTaxonomyHandler creates a new TaxonomyHandler.
func NewTaxonomyHandler(catalog *service.CatalogService) *TaxonomyHandler {
	return &TaxonomyHandler{catalog: catalog}
}

// HandleListCategories returns all categories, alphabetically.
// GET /api/categories
func (h *TaxonomyHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		slog.Error("list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toCategoryDTOs(categories))
}

// HandleAddCategory resolves a category by name, creating it when
// absent. Responds 201 for a new category, 200 for an existing one.
// POST /api/categories
func (h *TaxonomyHandler) HandleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, created, err := h.catalog.AddCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("add category", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toCategoryDTO(*category))
}

// HandleListTags returns all tags, alphabetically.
// GET /api/tags
func (h *TaxonomyHandler) HandleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.catalog.ListTags(r.Context())
	if err != nil {
		slog.Error("list tags", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toTagDTOs(tags))
}

// HandleAddTag resolves a tag by name, creating it when absent.
// POST /api/tags
func (h *TaxonomyHandler) HandleAddTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tag, created, err := h.catalog.AddTag(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("add tag", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toTagDTO(*tag))
}

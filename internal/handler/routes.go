package handler

import (
	"net/http"

	"github.com/mhalden/closet/internal/domain"
	"github.com/mhalden/closet/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Article
// images and outfit photos use separate stores; their filename
// uniqueness is per table.
func RegisterRoutes(
	mux *http.ServeMux,
	catalog *service.CatalogService,
	auth *service.AuthService,
	imageFiles, outfitFiles domain.FileStore,
	loginLimiter *service.TokenBucket,
	imagesDir, outfitsDir string,
) {
	images := NewImageHandler(catalog, imageFiles, imagesDir)
	taxonomy := NewTaxonomyHandler(catalog)
	outfits := NewOutfitHandler(catalog, outfitFiles, outfitsDir)
	authH := NewAuthHandler(auth, loginLimiter)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("POST /api/login", authH.HandleLogin)

	mux.HandleFunc("GET /api/images", images.HandleList)
	mux.HandleFunc("POST /api/images", images.HandleUpload)
	mux.HandleFunc("GET /api/images/{id}", images.HandleGet)
	mux.HandleFunc("GET /api/images/{id}/file", images.HandleServeFile)
	mux.HandleFunc("PATCH /api/images/{id}", images.HandleUpdateDescription)
	mux.HandleFunc("POST /api/images/{id}/categories", images.HandleAssignCategory)
	mux.HandleFunc("POST /api/images/{id}/tags", images.HandleAssignTag)

	mux.HandleFunc("GET /api/categories", taxonomy.HandleListCategories)
	mux.HandleFunc("POST /api/categories", taxonomy.HandleAddCategory)
	mux.HandleFunc("GET /api/tags", taxonomy.HandleListTags)
	mux.HandleFunc("POST /api/tags", taxonomy.HandleAddTag)

	mux.HandleFunc("GET /api/outfits", outfits.HandleList)
	mux.HandleFunc("POST /api/outfits", outfits.HandleUpload)
	mux.HandleFunc("GET /api/outfits/{id}", outfits.HandleGet)
	mux.HandleFunc("GET /api/outfits/{id}/file", outfits.HandleServeFile)
	mux.HandleFunc("PATCH /api/outfits/{id}", outfits.HandleUpdateDescription)
	mux.HandleFunc("PUT /api/outfits/{id}/items/{imageID}", outfits.HandleAddItem)
	mux.HandleFunc("DELETE /api/outfits/{id}/items/{imageID}", outfits.HandleRemoveItem)
}

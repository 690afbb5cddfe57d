package handler

import (
	"time"

	"github.com/mhalden/closet/internal/domain"
)

// CategoryDTO is the JSON representation of a category.
type CategoryDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

func toCategoryDTO(c domain.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}

func toCategoryDTOs(categories []domain.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = toCategoryDTO(c)
	}
	return dtos
}

// TagDTO is the JSON representation of a tag.
type TagDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

func toTagDTO(t domain.Tag) TagDTO {
	return TagDTO{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func toTagDTOs(tags []domain.Tag) []TagDTO {
	dtos := make([]TagDTO, len(tags))
	for i, tag := range tags {
		dtos[i] = toTagDTO(tag)
	}
	return dtos
}

// ImageDTO is the JSON representation of a catalogued image with its
// associations.
type ImageDTO struct {
	ID          int64         `json:"id"`
	Filename    string        `json:"filename"`
	FilePath    string        `json:"filePath"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
	Categories  []CategoryDTO `json:"categories"`
	Tags        []TagDTO      `json:"tags"`
}

func toImageDTO(img *domain.Image) ImageDTO {
	return ImageDTO{
		ID:          img.ID,
		Filename:    img.Filename,
		FilePath:    img.FilePath,
		Description: img.Description,
		CreatedAt:   img.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   img.UpdatedAt.Format(time.RFC3339),
		Categories:  toCategoryDTOs(img.Categories),
		Tags:        toTagDTOs(img.Tags),
	}
}

func toImageDTOs(images []domain.Image) []ImageDTO {
	dtos := make([]ImageDTO, len(images))
	for i := range images {
		dtos[i] = toImageDTO(&images[i])
	}
	return dtos
}

// OutfitItemDTO is the JSON representation of an outfit member image,
// without the member's own associations.
type OutfitItemDTO struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	FilePath    string `json:"filePath"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// OutfitDTO is the JSON representation of an outfit.
type OutfitDTO struct {
	ID          int64           `json:"id"`
	Filename    string          `json:"filename"`
	FilePath    string          `json:"filePath"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
	Items       []OutfitItemDTO `json:"items"`
}

func toOutfitDTO(o *domain.Outfit) OutfitDTO {
	items := make([]OutfitItemDTO, len(o.Items))
	for i, img := range o.Items {
		items[i] = OutfitItemDTO{
			ID:          img.ID,
			Filename:    img.Filename,
			FilePath:    img.FilePath,
			Description: img.Description,
			CreatedAt:   img.CreatedAt.Format(time.RFC3339),
		}
	}
	return OutfitDTO{
		ID:          o.ID,
		Filename:    o.Filename,
		FilePath:    o.FilePath,
		Description: o.Description,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt.Format(time.RFC3339),
		Items:       items,
	}
}

func toOutfitDTOs(outfits []domain.Outfit) []OutfitDTO {
	dtos := make([]OutfitDTO, len(outfits))
	for i := range outfits {
		dtos[i] = toOutfitDTO(&outfits[i])
	}
	return dtos
}

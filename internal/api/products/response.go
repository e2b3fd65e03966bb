package products

import (
	"encoding/json"
	"time"

	"watch-storefront/internal/domain/catalog"
	"watch-storefront/internal/domain/media"
)

type ImageDTO struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	Alt    *string `json:"alt"`
	IsMain bool    `json:"isMain"`
}

type ProductDTO struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	TitleEn       string     `json:"titleEn"`
	TitleIt       string     `json:"titleIt"`
	DescriptionEn string     `json:"descriptionEn"`
	DescriptionIt string     `json:"descriptionIt"`
	Price         *json.Number `json:"price"` // null = price on request
	Status        string     `json:"status"`
	Brand         *string    `json:"brand"`
	Model         *string    `json:"model"`
	Year          *int       `json:"year"`
	Condition     *string    `json:"condition"`
	OwnerID       *uint      `json:"ownerId"`
	Images        []ImageDTO `json:"images"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func toImageDTO(img media.Image) ImageDTO {
	return ImageDTO{ID: img.ID, URL: img.URL, Alt: img.Alt, IsMain: img.IsMain}
}

func ToProductDTO(p catalog.Product) ProductDTO {
	out := ProductDTO{
		ID:            p.ID,
		Slug:          p.Slug(),
		TitleEn:       p.TitleEn,
		TitleIt:       p.TitleIt,
		DescriptionEn: p.DescriptionEn,
		DescriptionIt: p.DescriptionIt,
		Status:        string(p.Status),
		Brand:         p.Brand,
		Model:         p.Model,
		Year:          p.Year,
		Condition:     p.Condition,
		OwnerID:       p.OwnerID,
		Images:        make([]ImageDTO, 0, len(p.Images)),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Price.Valid {
		n := json.Number(p.Price.Decimal.String())
		out.Price = &n
	}
	for _, img := range p.Images {
		out.Images = append(out.Images, toImageDTO(img))
	}
	return out
}

func ToProductDTOs(ps []catalog.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToProductDTO(p))
	}
	return out
}

package dtos

import (
	"time"

	"unisale-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpdateProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	State       string           `json:"state" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
}

// ProductFilter carries the listing query string.
type ProductFilter struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	Condition string `form:"condition"`
	Sort      string `form:"sort"`
}

type ProductDetail struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Category      string              `json:"category"`
	State         string              `json:"state"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"original_price"`
	MonthsUsed    *int                `json:"months_used"`
	ImageURL      string              `json:"image_url"`
	Images        []string            `json:"images"`
	CreatedAt     time.Time           `json:"created_at"`
}

type ProductDetailResponse struct {
	Product ProductDetail   `json:"product"`
	Seller  ProfileResponse `json:"seller"`
}

// NewProductDetailResponse lists the main image first followed by the
// remaining images without duplicates.
func NewProductDetailResponse(p models.Product) ProductDetailResponse {
	images := []string{}
	seen := map[string]bool{}
	add := func(url string) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		images = append(images, url)
	}
	add(p.ImageURL)
	for _, img := range p.Images {
		add(img.ImageURL)
	}

	resp := ProductDetailResponse{
		Product: ProductDetail{
			ID:            p.ID,
			UserID:        p.UserID,
			Name:          p.Name,
			Description:   p.Description,
			Category:      p.Category,
			State:         p.State,
			Price:         p.Price,
			OriginalPrice: p.OriginalPrice,
			MonthsUsed:    p.MonthsUsed,
			ImageURL:      p.ImageURL,
			Images:        images,
			CreatedAt:     p.CreatedAt,
		},
	}
	if p.Seller != nil {
		resp.Seller = NewProfileResponse(*p.Seller)
	}
	return resp
}

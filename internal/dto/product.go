package dto

import (
	"time"

	"inventory/internal/models"

	"github.com/shopspring/decimal"
)

// CreateProductRequest is the body of POST /products. Price is validated as
// a float through the decimal type func registered on the validator.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=1000"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
	Stock       int             `json:"stock" validate:"gte=0"`
	CategoryID  uint            `json:"category_id" validate:"required"`
	ImageURL    *string         `json:"image_url" validate:"omitempty,url"`
	ImageBase64 *string         `json:"image_base64" validate:"omitempty,base64"`
}

// UpdateProductRequest is the body of PUT /products/{id}. IsActive defaults
// to true when omitted.
type UpdateProductRequest struct {
	CreateProductRequest
	IsActive *bool `json:"is_active"`
}

// ProductQuery carries the optional filters of GET /products.
type ProductQuery struct {
	CategoryID *uint
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Page       int
	Limit      int
}

// ProductResponse is a product as returned by the product endpoints.
type ProductResponse struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Price       float64          `json:"price"`
	Stock       int              `json:"stock"`
	CategoryID  uint             `json:"category_id"`
	ImageURL    *string          `json:"image_url"`
	ImageBase64 *string          `json:"image_base64"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Category    *CategorySummary `json:"category"`
}

func NewProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Round(2).InexactFloat64(),
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
		ImageBase64: p.ImageBase64,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category.ID != 0 {
		resp.Category = &CategorySummary{
			ID:          p.Category.ID,
			Name:        p.Category.Name,
			Description: p.Category.Description,
			IsActive:    p.Category.IsActive,
			CreatedAt:   p.Category.CreatedAt,
			UpdatedAt:   p.Category.UpdatedAt,
		}
	}
	return resp
}

func NewProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = NewProductResponse(&products[i])
	}
	return out
}

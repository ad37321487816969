package repositories

import (
	"context"

	"inventory/internal/models"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows a product listing. Nil fields are not applied.
// Page is 1-based; the caller is responsible for keeping Page and Limit >= 1.
type ProductFilter struct {
	CategoryID *uint
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Page       int
	Limit      int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAllActive(ctx context.Context) ([]models.Product, error)
	GetFiltered(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	Search(ctx context.Context, term string) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

package repositories

import (
	"context"

	"inventory/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAllWithProductCount(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
	NameExists(ctx context.Context, name string) (bool, error)
	HasProducts(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

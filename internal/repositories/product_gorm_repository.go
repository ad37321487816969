package repositories

import (
	"context"
	"fmt"
	"strings"

	"inventory/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
	w  writer
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// active is the base query for every listing: active rows with their
// category preloaded, in ascending ID order.
func (r *GORMProductRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Where("products.is_active = ?", true).
		Order("products.id ASC")
}

// GetAllActive retrieves every active product.
func (r *GORMProductRepository) GetAllActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.active(ctx).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetFiltered retrieves one page of active products matching every filter set.
func (r *GORMProductRepository) GetFiltered(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := r.active(ctx)
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}

	var products []models.Product
	offset := (filter.Page - 1) * filter.Limit
	if err := query.Offset(offset).Limit(filter.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get filtered products: %w", err)
	}
	return products, nil
}

// Search retrieves active products whose name or description contains term.
// Wildcards in term match literally.
func (r *GORMProductRepository) Search(ctx context.Context, term string) ([]models.Product, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"

	var products []models.Product
	err := r.active(ctx).
		Where(`(products.name LIKE ? ESCAPE '\' OR products.description LIKE ? ESCAPE '\')`, pattern, pattern).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products for %q: %w", term, err)
	}
	return products, nil
}

// GetByID retrieves a single product, active or not, with its category.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, translate(err))
	}
	return &product, nil
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.w.insert(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves every column of an existing product, including zero values.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	if err := r.w.save(ctx, product); err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	return nil
}

// Delete hard-deletes a product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

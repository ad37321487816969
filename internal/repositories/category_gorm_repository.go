package repositories

import (
	"context"
	"fmt"

	"inventory/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
	w  writer
}

// withProductCount selects every category column plus the number of products
// referencing it, active or not.
func withProductCount(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS product_count")
}

// GetAllWithProductCount retrieves all categories ordered by ID.
func (r *GORMCategoryRepository) GetAllWithProductCount(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Scopes(withProductCount).Order("categories.id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category, including its product count.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Scopes(withProductCount).Where("categories.id = ?", id).First(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, translate(err))
	}
	return &category, nil
}

// GetByName retrieves a category by exact name.
func (r *GORMCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		return nil, fmt.Errorf("failed to get category by name %q: %w", name, translate(err))
	}
	return &category, nil
}

// Exists reports whether a category with the given ID exists.
func (r *GORMCategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.count(ctx, &models.Category{}, "id = ?", id)
}

// NameExists reports whether a category with exactly this name exists.
func (r *GORMCategoryRepository) NameExists(ctx context.Context, name string) (bool, error) {
	return r.count(ctx, &models.Category{}, "name = ?", name)
}

// HasProducts reports whether any product, active or not, references the category.
func (r *GORMCategoryRepository) HasProducts(ctx context.Context, id uint) (bool, error) {
	return r.count(ctx, &models.Product{}, "category_id = ?", id)
}

// Create inserts a new category.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.w.insert(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update saves every column of an existing category.
func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	if err := r.w.save(ctx, category); err != nil {
		return fmt.Errorf("failed to update category %d: %w", category.ID, err)
	}
	return nil
}

// Delete removes a category by its ID. The products foreign key rejects the
// delete while any product still references the row.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GORMCategoryRepository) count(ctx context.Context, model any, query string, arg any) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(model).Where(query, arg).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to count rows: %w", err)
	}
	return n > 0, nil
}

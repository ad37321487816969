package services

import (
	"context"
	"errors"

	"inventory/internal/dto"
	"inventory/internal/models"
	"inventory/internal/repositories"
)

const errCategoryNameTaken = "category name already exists"

// CategoryService handles business logic related to categories.
type CategoryService struct {
	store repositories.Store
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store repositories.Store) *CategoryService {
	return &CategoryService{
		store: store,
	}
}

// ListAll retrieves every category with its product count.
func (s *CategoryService) ListAll(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories().GetAllWithProductCount(ctx)
}

// GetByID retrieves a single category.
func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.store.Categories().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("category not found", err)
		}
		return nil, err
	}
	return category, nil
}

// Create adds an active category. Names are compared byte for byte.
func (s *CategoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		categories := tx.Categories()

		exists, err := categories.NameExists(ctx, req.Name)
		if err != nil {
			return err
		}
		if exists {
			return conflictError(errCategoryNameTaken, nil)
		}

		if err := categories.Create(ctx, category); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return conflictError(errCategoryNameTaken, err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Update overwrites name, description and active flag. Keeping the current
// name is allowed; taking another category's name is a conflict.
func (s *CategoryService) Update(ctx context.Context, id uint, req dto.UpdateCategoryRequest) (*models.Category, error) {
	var updated *models.Category
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		categories := tx.Categories()

		category, err := categories.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return notFoundError("category not found", err)
			}
			return err
		}

		existing, err := categories.GetByName(ctx, req.Name)
		switch {
		case err == nil && existing.ID != id:
			return conflictError(errCategoryNameTaken, nil)
		case err != nil && !errors.Is(err, repositories.ErrNotFound):
			return err
		}

		category.Name = req.Name
		category.Description = req.Description
		category.IsActive = req.IsActive == nil || *req.IsActive

		if err := categories.Update(ctx, category); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return conflictError(errCategoryNameTaken, err)
			}
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a category that no product references. It reports false
// when the category does not exist.
func (s *CategoryService) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		categories := tx.Categories()

		exists, err := categories.Exists(ctx, id)
		if err != nil || !exists {
			return err
		}

		linked, err := categories.HasProducts(ctx, id)
		if err != nil {
			return err
		}
		if linked {
			return conflictError("cannot delete category with linked products", nil)
		}

		if err := categories.Delete(ctx, id); err != nil {
			switch {
			case errors.Is(err, repositories.ErrNotFound):
				return nil
			case errors.Is(err, repositories.ErrForeignKey):
				return conflictError("cannot delete category with linked products", err)
			}
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

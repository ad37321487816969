package services

import (
	"context"
	"errors"
	"math"

	"inventory/internal/dto"
	"inventory/internal/models"
	"inventory/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ProductService handles business logic related to products.
type ProductService struct {
	store repositories.Store
}

// NewProductService creates a new ProductService.
func NewProductService(store repositories.Store) *ProductService {
	return &ProductService{
		store: store,
	}
}

// ListAll retrieves every active product.
func (s *ProductService) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.store.Products().GetAllActive(ctx)
}

// ListFiltered retrieves one page of active products. Page is clamped to at
// least 1 and limit to [1, MaxLimit].
func (s *ProductService) ListFiltered(ctx context.Context, q dto.ProductQuery) ([]models.Product, error) {
	page, limit := clampPage(q.Page, q.Limit)
	return s.store.Products().GetFiltered(ctx, repositories.ProductFilter{
		CategoryID: q.CategoryID,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		Page:       page,
		Limit:      limit,
	})
}

// Search retrieves active products whose name or description contains term.
// Rejecting a blank term is the caller's job.
func (s *ProductService) Search(ctx context.Context, term string) ([]models.Product, error) {
	return s.store.Products().Search(ctx, term)
}

// GetByID retrieves a single product with its category.
func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("product not found", err)
		}
		return nil, err
	}
	return product, nil
}

// Create adds an active product to an existing category and returns it as
// committed, category included.
func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest) (*models.Product, error) {
	if err := checkProduct(req); err != nil {
		return nil, err
	}

	var created *models.Product
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := requireCategory(ctx, tx, req.CategoryID); err != nil {
			return err
		}

		product := &models.Product{IsActive: true}
		applyProduct(product, req)

		products := tx.Products()
		if err := products.Create(ctx, product); err != nil {
			if errors.Is(err, repositories.ErrForeignKey) {
				return notFoundError("category not found", err)
			}
			return err
		}

		var err error
		created, err = products.GetByID(ctx, product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update overwrites every mutable field of a product, including its active
// flag, and returns it as committed.
func (s *ProductService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*models.Product, error) {
	if err := checkProduct(req.CreateProductRequest); err != nil {
		return nil, err
	}

	var updated *models.Product
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		products := tx.Products()

		product, err := products.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return notFoundError("product not found", err)
			}
			return err
		}

		if err := requireCategory(ctx, tx, req.CategoryID); err != nil {
			return err
		}

		applyProduct(product, req.CreateProductRequest)
		product.IsActive = req.IsActive == nil || *req.IsActive

		if err := products.Update(ctx, product); err != nil {
			if errors.Is(err, repositories.ErrForeignKey) {
				return notFoundError("category not found", err)
			}
			return err
		}

		updated, err = products.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete hard-deletes a product. It reports false when the product does not exist.
func (s *ProductService) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Products().Delete(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil
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

func requireCategory(ctx context.Context, tx repositories.Store, id uint) error {
	exists, err := tx.Categories().Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFoundError("category not found", nil)
	}
	return nil
}

func checkProduct(req dto.CreateProductRequest) error {
	if !req.Price.Round(2).GreaterThan(decimal.Zero) {
		return validationError("price must be greater than 0")
	}
	if req.Stock < 0 {
		return validationError("stock must not be negative")
	}
	return nil
}

// applyProduct copies request fields onto p. Prices keep two decimal places.
func applyProduct(p *models.Product, req dto.CreateProductRequest) {
	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price.Round(2)
	p.Stock = req.Stock
	p.CategoryID = req.CategoryID
	p.ImageURL = req.ImageURL
	p.ImageBase64 = req.ImageBase64
}

// clampPage keeps page >= 1 and limit within [1, MaxLimit]. Page is also
// capped so that (page-1)*limit cannot overflow; the capped page still lies
// past any real data and comes back empty.
func clampPage(page, limit int) (int, int) {
	switch {
	case limit < 1:
		limit = 1
	case limit > MaxLimit:
		limit = MaxLimit
	}
	switch {
	case page < 1:
		page = DefaultPage
	case page > math.MaxInt/limit:
		page = math.MaxInt / limit
	}
	return page, limit
}

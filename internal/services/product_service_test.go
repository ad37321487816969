package services_test

import (
	"context"
	"math"
	"testing"

	"inventory/internal/dto"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductRequest(price string, stock int, categoryID uint) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:       "Laptop",
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		CategoryID: categoryID,
	}
}

func TestProductService_ListFilteredClampsPaging(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "defaults kept", page: 1, limit: 10, wantPage: 1, wantLimit: 10},
		{name: "page below one", page: 0, limit: 10, wantPage: 1, wantLimit: 10},
		{name: "negative page", page: -3, limit: 5, wantPage: 1, wantLimit: 5},
		{name: "limit below one", page: 2, limit: 0, wantPage: 2, wantLimit: 1},
		{name: "limit above max", page: 1, limit: 500, wantPage: 1, wantLimit: services.MaxLimit},
		{name: "offset would overflow", page: math.MaxInt, limit: 100, wantPage: math.MaxInt / 100, wantLimit: 100},
		{name: "huge page with default limit", page: math.MaxInt / 5, limit: 10, wantPage: math.MaxInt / 10, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			svc := services.NewProductService(store)

			store.products.On("GetFiltered", ctx, mock.MatchedBy(func(f repositories.ProductFilter) bool {
				return f.Page == tt.wantPage && f.Limit == tt.wantLimit
			})).Return([]models.Product{}, nil).Once()

			_, err := svc.ListFiltered(ctx, dto.ProductQuery{Page: tt.page, Limit: tt.limit})
			require.NoError(t, err)
			store.products.AssertExpectations(t)
		})
	}
}

func TestProductService_ListFilteredPassesFilters(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	svc := services.NewProductService(store)

	categoryID := uint(2)
	minPrice := decimal.RequireFromString("10")
	maxPrice := decimal.RequireFromString("99.99")

	store.products.On("GetFiltered", ctx, repositories.ProductFilter{
		CategoryID: &categoryID,
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		Page:       1,
		Limit:      10,
	}).Return([]models.Product{{ID: 1}}, nil).Once()

	products, err := svc.ListFiltered(ctx, dto.ProductQuery{
		CategoryID: &categoryID,
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		Page:       1,
		Limit:      10,
	})
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestProductService_GetByIDMissing(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	svc := services.NewProductService(store)

	store.products.On("GetByID", ctx, uint(8)).Return(nil, repositories.ErrNotFound).Once()

	_, err := svc.GetByID(ctx, 8)
	svcErr := requireKind(t, err, services.KindNotFound)
	assert.Equal(t, "product not found", svcErr.Message)
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	svc := services.NewProductService(store)

	store.categories.On("Exists", ctx, uint(1)).Return(true, nil).Once()
	store.products.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.IsActive && p.Price.Equal(decimal.RequireFromString("19.99")) && p.CategoryID == 1
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = 11
	}).Return(nil).Once()
	store.products.On("GetByID", ctx, uint(11)).Return(&models.Product{
		ID:         11,
		Name:       "Laptop",
		Price:      decimal.RequireFromString("19.99"),
		CategoryID: 1,
		IsActive:   true,
		Category:   models.Category{ID: 1, Name: "Electronics"},
	}, nil).Once()

	product, err := svc.Create(ctx, newProductRequest("19.991", 3, 1))
	require.NoError(t, err)
	assert.Equal(t, uint(11), product.ID)
	assert.Equal(t, "Electronics", product.Category.Name)
	store.products.AssertExpectations(t)
}

func TestProductService_CreateRejects(t *testing.T) {
	ctx := context.Background()

	t.Run("missing category", func(t *testing.T) {
		store := newMockStore()
		svc := services.NewProductService(store)
		store.categories.On("Exists", ctx, uint(4)).Return(false, nil).Once()

		_, err := svc.Create(ctx, newProductRequest("5", 1, 4))
		svcErr := requireKind(t, err, services.KindNotFound)
		assert.Equal(t, "category not found", svcErr.Message)
		store.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("price rounds to zero", func(t *testing.T) {
		store := newMockStore()
		svc := services.NewProductService(store)

		_, err := svc.Create(ctx, newProductRequest("0.004", 1, 1))
		requireKind(t, err, services.KindValidation)
		store.categories.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("negative stock", func(t *testing.T) {
		store := newMockStore()
		svc := services.NewProductService(store)

		_, err := svc.Create(ctx, newProductRequest("5", -1, 1))
		requireKind(t, err, services.KindValidation)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	svc := services.NewProductService(store)

	existing := &models.Product{ID: 3, Name: "Old", Price: decimal.RequireFromString("1"), CategoryID: 1, IsActive: true}
	store.products.On("GetByID", ctx, uint(3)).Return(existing, nil).Twice()
	store.categories.On("Exists", ctx, uint(2)).Return(true, nil).Once()
	store.products.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Laptop" && p.CategoryID == 2 && !p.IsActive
	})).Return(nil).Once()

	req := dto.UpdateProductRequest{CreateProductRequest: newProductRequest("250", 4, 2), IsActive: boolPtr(false)}
	product, err := svc.Update(ctx, 3, req)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", product.Name)
	store.products.AssertExpectations(t)
}

func TestProductService_UpdateMissingProduct(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	svc := services.NewProductService(store)

	store.products.On("GetByID", ctx, uint(3)).Return(nil, repositories.ErrNotFound).Once()

	_, err := svc.Update(ctx, 3, dto.UpdateProductRequest{CreateProductRequest: newProductRequest("10", 1, 1)})
	requireKind(t, err, services.KindNotFound)
	store.categories.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestProductService_UpdateMissingCategory(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	svc := services.NewProductService(store)

	existing := &models.Product{ID: 3, Name: "Old", Price: decimal.RequireFromString("1"), CategoryID: 1, IsActive: true}
	store.products.On("GetByID", ctx, uint(3)).Return(existing, nil).Once()
	store.categories.On("Exists", ctx, uint(999)).Return(false, nil).Once()

	_, err := svc.Update(ctx, 3, dto.UpdateProductRequest{CreateProductRequest: newProductRequest("10", 1, 999)})
	svcErr := requireKind(t, err, services.KindNotFound)
	assert.Equal(t, "category not found", svcErr.Message)
	store.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Equal(t, uint(1), existing.CategoryID)
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	svc := services.NewProductService(store)

	store.products.On("Delete", ctx, uint(1)).Return(nil).Once()
	store.products.On("Delete", ctx, uint(2)).Return(repositories.ErrNotFound).Once()

	deleted, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, 2)
	require.NoError(t, err)
	assert.False(t, deleted)
}

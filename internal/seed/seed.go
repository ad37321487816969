package seed

import (
	"context"
	"fmt"
	"log"

	"inventory/internal/dto"
	"inventory/internal/services"

	"github.com/shopspring/decimal"
)

type demoCategory struct {
	name        string
	description string
	products    []demoProduct
}

type demoProduct struct {
	name        string
	description string
	price       string
	stock       int
}

var demoData = []demoCategory{
	{
		name:        "Electronics",
		description: "Computers and accessories",
		products: []demoProduct{
			{name: "Laptop", description: "High performance laptop", price: "1200.00", stock: 10},
			{name: "Keyboard", description: "Mechanical keyboard", price: "75.00", stock: 25},
			{name: "Mouse", description: "Ergonomic wireless mouse", price: "25.00", stock: 50},
		},
	},
	{
		name:        "Office",
		description: "Desk and stationery supplies",
		products: []demoProduct{
			{name: "Notebook", description: "A5 dotted notebook", price: "4.50", stock: 200},
			{name: "Desk Lamp", description: "Adjustable LED desk lamp", price: "39.99", stock: 15},
		},
	},
}

// Run populates an empty database with demo categories and products. It does
// nothing when any category already exists.
func Run(ctx context.Context, categories *services.CategoryService, products *services.ProductService) error {
	existing, err := categories.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("Skipping demo data, %d categories already present", len(existing))
		return nil
	}

	for _, dc := range demoData {
		description := dc.description
		category, err := categories.Create(ctx, dto.CreateCategoryRequest{
			Name:        dc.name,
			Description: &description,
		})
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", dc.name, err)
		}
		log.Printf("Seeded category: %s (ID: %d)", category.Name, category.ID)

		for _, dp := range dc.products {
			description := dp.description
			product, err := products.Create(ctx, dto.CreateProductRequest{
				Name:        dp.name,
				Description: &description,
				Price:       decimal.RequireFromString(dp.price),
				Stock:       dp.stock,
				CategoryID:  category.ID,
			})
			if err != nil {
				return fmt.Errorf("failed to seed product %s: %w", dp.name, err)
			}
			log.Printf("Seeded product: %s (ID: %d)", product.Name, product.ID)
		}
	}
	return nil
}

package handlers

import (
	"strconv"
	"strings"

	"inventory/internal/dto"
	"inventory/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes behind the given middleware.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	productRoutes := router.Group("/products", mw...)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/search", h.HandleSearchProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists active products. Without any query parameter every
// active product is returned; otherwise one filtered page.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	q, present, errMsg := parseProductQuery(c)
	if errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": errMsg,
		})
	}

	var products []dto.ProductResponse
	if !present {
		all, err := h.service.ListAll(c.UserContext())
		if err != nil {
			return respondError(c, err, "retrieving products")
		}
		products = dto.NewProductResponses(all)
	} else {
		page, err := h.service.ListFiltered(c.UserContext(), q)
		if err != nil {
			return respondError(c, err, "filtering products")
		}
		products = dto.NewProductResponses(page)
	}
	return c.JSON(products)
}

// HandleSearchProducts searches active products by name or description.
func (h *ProductHandler) HandleSearchProducts(c *fiber.Ctx) error {
	term := c.Query("q")
	if strings.TrimSpace(term) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Search term is required",
		})
	}

	products, err := h.service.Search(c.UserContext(), term)
	if err != nil {
		return respondError(c, err, "searching products")
	}
	return c.JSON(dto.NewProductResponses(products))
}

// HandleGetProductByID retrieves a single product with its category.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	product, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "retrieving the product")
	}
	return c.JSON(dto.NewProductResponse(product))
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	product, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "creating the product")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(product))
}

// HandleUpdateProduct replaces the fields of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	var req dto.UpdateProductRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	product, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err, "updating the product")
	}
	return c.JSON(dto.NewProductResponse(product))
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	deleted, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "deleting the product")
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "product not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProductQuery reads the listing filters. present reports whether any
// of them was supplied; a non-empty message describes a malformed value.
func parseProductQuery(c *fiber.Ctx) (q dto.ProductQuery, present bool, message string) {
	q.Page = services.DefaultPage
	q.Limit = services.DefaultLimit

	if raw := c.Query("categoryId"); raw != "" {
		present = true
		id, err := strconv.ParseUint(raw, 10, 0)
		if err != nil || id == 0 {
			return q, present, "categoryId must be a positive integer"
		}
		categoryID := uint(id)
		q.CategoryID = &categoryID
	}

	for _, p := range []struct {
		key string
		dst **decimal.Decimal
	}{
		{"minPrice", &q.MinPrice},
		{"maxPrice", &q.MaxPrice},
	} {
		raw := c.Query(p.key)
		if raw == "" {
			continue
		}
		present = true
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return q, present, p.key + " must be a number"
		}
		*p.dst = &d
	}

	for _, p := range []struct {
		key string
		dst *int
	}{
		{"page", &q.Page},
		{"limit", &q.Limit},
	} {
		raw := c.Query(p.key)
		if raw == "" {
			continue
		}
		present = true
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, present, p.key + " must be an integer"
		}
		*p.dst = n
	}

	return q, present, ""
}

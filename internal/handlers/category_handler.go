package handlers

import (
	"inventory/internal/dto"
	"inventory/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the category routes behind the given middleware.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	categoryRoutes := router.Group("/categories", mw...)
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

// HandleGetCategories lists every category with its product count.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err, "retrieving categories")
	}
	return c.JSON(dto.NewCategoryResponses(categories))
}

// HandleGetCategoryByID retrieves a single category.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	category, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "retrieving the category")
	}
	return c.JSON(dto.NewCategoryResponse(category))
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	category, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "creating the category")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCategoryResponse(category))
}

// HandleUpdateCategory updates an existing category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	var req dto.UpdateCategoryRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	category, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err, "updating the category")
	}
	return c.JSON(dto.NewCategoryResponse(category))
}

// HandleDeleteCategory deletes a category that has no products.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	deleted, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "deleting the category")
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "category not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

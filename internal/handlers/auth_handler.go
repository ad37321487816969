package handlers

import (
	"errors"

	"inventory/internal/dto"
	"inventory/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the authentication routes. Extra handlers such as
// a rate limiter run before each route.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	authRoutes := router.Group("/auth", mw...)
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	result, err := h.authService.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		// Registration reports duplicates as a plain bad request.
		var svcErr *services.Error
		if errors.As(err, &svcErr) && svcErr.Kind == services.KindConflict {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": svcErr.Message,
			})
		}
		return respondError(c, err, "registration")
	}

	return c.JSON(authResponse(result))
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "login")
	}

	return c.JSON(authResponse(result))
}

func authResponse(r *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     r.Token,
		Username:  r.Username,
		Email:     r.Email,
		ExpiresAt: r.ExpiresAt,
	}
}

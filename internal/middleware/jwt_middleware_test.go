package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory/internal/middleware"
	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	token  string
	claims *services.Claims
}

func (s stubValidator) Validate(tokenString string) (*services.Claims, error) {
	if tokenString != s.token {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

func TestAuthRequired(t *testing.T) {
	validator := stubValidator{
		token:  "good-token",
		claims: &services.Claims{UserID: 9, Username: "frank", Email: "frank@example.com"},
	}

	app := fiber.New()
	app.Get("/private", middleware.AuthRequired(validator), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  c.Locals(middleware.LocalUserID),
			"username": c.Locals(middleware.LocalUsername),
			"email":    c.Locals(middleware.LocalEmail),
		})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good-token", status: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad-token", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good-token", status: http.StatusOK},
		{name: "scheme is case insensitive", header: "bearer good-token", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

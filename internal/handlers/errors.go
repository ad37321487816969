package handlers

import (
	"errors"
	"fmt"
	"log"

	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps a service error kind onto an HTTP status.
func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindConflict:
		return fiber.StatusConflict
	case services.KindUnauthorized:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// respondError writes err as a JSON response. Business errors carry only
// their message; anything else is logged and reported as a server error.
func respondError(c *fiber.Ctx, err error, operation string) error {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		return c.Status(statusFor(svcErr.Kind)).JSON(fiber.Map{
			"message": svcErr.Message,
		})
	}

	log.Printf("Error %s: %v", operation, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fmt.Sprintf("An error occurred during %s", operation),
		"error":   err.Error(),
	})
}

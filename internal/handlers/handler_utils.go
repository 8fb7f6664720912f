package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taskreel/taskreel-api/internal/lifecycle"
	"github.com/taskreel/taskreel-api/internal/models"
)

func getUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("userId")
	if v == nil {
		return uuid.Nil, fmt.Errorf("unauthorized")
	}

	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		return uuid.Parse(t)
	case []byte:
		return uuid.ParseBytes(t)
	default:
		return uuid.Nil, fmt.Errorf("invalid userId type: %T", v)
	}
}

func getRole(c *fiber.Ctx) models.Role {
	if r, ok := c.Locals("role").(string); ok {
		return models.Role(r)
	}
	return ""
}

// serviceError maps the lifecycle sentinels onto HTTP statuses. Anything
// unrecognized is a 500.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, lifecycle.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, lifecycle.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, lifecycle.ErrUnauthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, lifecycle.ErrNotConfigured):
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

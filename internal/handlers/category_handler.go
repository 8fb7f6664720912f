package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskreel/taskreel-api/internal/models"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// GetCategories returns the fixed list tasks can be posted under.
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.TaskCategories,
	})
}

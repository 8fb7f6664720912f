package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskreel/taskreel-api/internal/store"
)

type AdminHandler struct {
	Store store.Store
}

func NewAdminHandler(st store.Store) *AdminHandler {
	return &AdminHandler{Store: st}
}

// Stats aggregates the marketplace counts the admin dashboard shows.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	userCounts, err := h.Store.Users().CountByRole()
	if err != nil {
		return serviceError(c, err)
	}

	taskCounts, err := h.Store.Tasks().CountByStatus()
	if err != nil {
		return serviceError(c, err)
	}

	appCounts, err := h.Store.Applications().CountByStatus()
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"users_by_role":          userCounts,
			"tasks_by_status":        taskCounts,
			"applications_by_status": appCounts,
		},
	})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Store.Users().ListAll()
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
	})
}

func (h *AdminHandler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.Store.Tasks().List(store.TaskFilter{})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    tasks,
	})
}

func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	apps, err := h.Store.Applications().ListAll()
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    apps,
	})
}

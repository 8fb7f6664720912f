package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taskreel/taskreel-api/internal/services/marketplace"
)

type ApplicationHandler struct {
	Apps *marketplace.ApplicationService
}

func NewApplicationHandler(apps *marketplace.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Apps: apps}
}

type ApplyReq struct {
	Proposal      string `json:"proposal"`
	ProposedPrice int64  `json:"proposed_price"`
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid task id",
		})
	}

	uid, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unauthorized",
		})
	}

	var req ApplyReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	app, err := h.Apps.Apply(marketplace.ApplyInput{
		TaskID:        taskID,
		FreelancerID:  uid,
		Proposal:      req.Proposal,
		ProposedPrice: req.ProposedPrice,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Application submitted",
		"data":    app,
	})
}

// ListForTask shows the task owner (or an admin) who applied.
func (h *ApplicationHandler) ListForTask(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid task id",
		})
	}

	uid, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unauthorized",
		})
	}

	apps, err := h.Apps.ListByTask(taskID, uid, getRole(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    apps,
	})
}

// ListMine shows a freelancer their own applications with the tasks as they
// stand now.
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unauthorized",
		})
	}

	apps, err := h.Apps.ListByFreelancer(uid)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    apps,
	})
}

func (h *ApplicationHandler) Accept(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid application id",
		})
	}

	uid, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unauthorized",
		})
	}

	app, err := h.Apps.Accept(id, uid, getRole(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application accepted",
		"data":    app,
	})
}

func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid application id",
		})
	}

	uid, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unauthorized",
		})
	}

	app, err := h.Apps.Reject(id, uid, getRole(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application rejected",
		"data":    app,
	})
}

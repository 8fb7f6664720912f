package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taskreel/taskreel-api/internal/models"
	"github.com/taskreel/taskreel-api/internal/services/marketplace"
	"github.com/taskreel/taskreel-api/internal/store"
)

type TaskHandler struct {
	Tasks *marketplace.TaskService
}

func NewTaskHandler(tasks *marketplace.TaskService) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

type CreateTaskReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Budget      int64  `json:"budget"`
	Location    string `json:"location"`
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unauthorized",
		})
	}

	var req CreateTaskReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	task, err := h.Tasks.Create(uid, marketplace.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Budget:      req.Budget,
		Location:    req.Location,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Task posted",
		"data":    task,
	})
}

// ListTasks is the public browse endpoint. Filters arrive as query params
// and zero values mean no constraint.
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	filter := store.TaskFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Status:   models.TaskStatus(c.Query("status")),
	}

	if owner := c.Query("business_owner_id"); owner != "" {
		id, err := uuid.Parse(owner)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "invalid business_owner_id",
			})
		}
		filter.BusinessOwnerID = id
	}

	tasks, err := h.Tasks.List(filter)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    tasks,
	})
}

// ListMine returns the signed-in owner's tasks, newest first.
func (h *TaskHandler) ListMine(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unauthorized",
		})
	}

	tasks, err := h.Tasks.List(store.TaskFilter{BusinessOwnerID: uid})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    tasks,
	})
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid task id",
		})
	}

	task, err := h.Tasks.Get(id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    task,
	})
}

type UpdateTaskStatusReq struct {
	Status string `json:"status"`
}

func (h *TaskHandler) UpdateTaskStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
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

	var req UpdateTaskStatusReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	task, err := h.Tasks.UpdateStatus(id, models.TaskStatus(req.Status), uid, getRole(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Task updated",
		"data":    task,
	})
}

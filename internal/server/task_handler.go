package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck-server/internal/models"
)

type extractTasksRequest struct {
	Input string `json:"input"`
}

// ExtractTasks sends free text to the assistant and persists the structured
// tasks it finds.
func (h *Handlers) ExtractTasks(c *fiber.Ctx) error {
	if h.ai == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Assistant is not configured"})
	}

	var req extractTasksRequest
	if err := c.BodyParser(&req); err != nil || req.Input == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Input is required"})
	}

	extracted, err := h.ai.ExtractTasks(c.Context(), req.Input)
	if err != nil {
		log.Printf("Task extraction failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Something went wrong, try again"})
	}

	userID := currentUserID(c)
	tasks := make([]*models.Task, 0, len(extracted))
	for _, e := range extracted {
		task := &models.Task{
			UserID:          userID,
			Title:           e.Titre,
			Subtasks:        e.MicroTaches,
			Priority:        models.NormalizePriority(e.Priorite),
			DurationMinutes: e.Duree,
			Delegable:       e.Delegable,
		}
		if err := h.tasks.Create(c.Context(), task); err != nil {
			log.Printf("Failed to save extracted task: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
		}
		tasks = append(tasks, task)
	}

	h.logInteraction(c, userID, "Tasks extracted from free text", models.LogTaskExtraction, fiber.Map{
		"input":       req.Input,
		"tasks_found": len(tasks),
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tasks": tasks})
}

func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.GetByUserID(c.Context(), currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"tasks": tasks})
}

type setDoneRequest struct {
	Done bool `json:"done"`
}

func (h *Handlers) SetTaskDone(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task id"})
	}
	req := setDoneRequest{Done: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}
	if err := h.tasks.SetDone(c.Context(), taskID, currentUserID(c), req.Done); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task id"})
	}
	if err := h.tasks.Delete(c.Context(), taskID, currentUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"success": true})
}

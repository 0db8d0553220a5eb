package server

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck-server/internal/models"
	"github.com/flowdeck/flowdeck-server/internal/schedule"
)

type planRoutineRequest struct {
	Routine *models.Routine `json:"routine"`
}

// PlanRoutine expands a routine into concrete calendar events and persists
// them in a single batch, plus a descriptive routine record for display.
func (h *Handlers) PlanRoutine(c *fiber.Ctx) error {
	var req planRoutineRequest
	if err := c.BodyParser(&req); err != nil || req.Routine == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid routine format"})
	}

	userID := currentUserID(c)
	result, err := schedule.Plan(req.Routine, userID, time.Now())
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Msg})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	if _, err := h.events.CreateMany(c.Context(), result.Events); err != nil {
		log.Printf("Failed to insert routine events: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	record := &models.RoutineRecord{
		UserID: userID,
		Name:   req.Routine.Title,
		Steps:  schedule.Steps(req.Routine),
	}
	if err := h.routines.Create(c.Context(), record); err != nil {
		log.Printf("Failed to save routine record: %v", err)
	}

	h.logInteraction(c, userID, "Routine planned: "+req.Routine.Title, models.LogRoutinePlanning, fiber.Map{
		"routine":        req.Routine,
		"events_created": result.Count,
	})

	return c.JSON(fiber.Map{
		"success":        true,
		"events_created": result.Count,
	})
}

type generateRoutineRequest struct {
	Message string         `json:"message"`
	Context map[string]any `json:"context"`
}

// GenerateRoutine asks the assistant for a routine; the caller decides
// whether to plan it afterwards.
func (h *Handlers) GenerateRoutine(c *fiber.Ctx) error {
	if h.ai == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Assistant is not configured"})
	}

	var req generateRoutineRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}

	reply, err := h.ai.GenerateRoutine(c.Context(), req.Message, req.Context)
	if err != nil {
		log.Printf("Assistant routine generation failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Something went wrong, try again"})
	}

	userID := currentUserID(c)
	if reply.Routine != nil {
		h.logInteraction(c, userID, "Routine generated from keywords: "+req.Message, models.LogRoutineGeneration, fiber.Map{
			"message": req.Message,
			"routine": reply.Routine,
		})
	}

	return c.JSON(reply)
}

func (h *Handlers) ListRoutines(c *fiber.Ctx) error {
	records, err := h.routines.GetByUserID(c.Context(), currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"routines": records})
}

func (h *Handlers) ActivateRoutine(c *fiber.Ctx) error {
	routineID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid routine id"})
	}
	if err := h.routines.SetActive(c.Context(), routineID, currentUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handlers) DeleteRoutine(c *fiber.Ctx) error {
	routineID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid routine id"})
	}
	if err := h.routines.Delete(c.Context(), routineID, currentUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// logInteraction writes an assistant log entry. Failures are swallowed: the
// log must never fail the operation it describes.
func (h *Handlers) logInteraction(c *fiber.Ctx, userID uuid.UUID, message, logType string, context any) {
	ctxJSON, err := json.Marshal(context)
	if err != nil {
		log.Printf("Failed to encode log context: %v", err)
		ctxJSON = nil
	}
	entry := &models.AssistantLog{
		UserID:  userID,
		Message: message,
		LogType: logType,
		Context: ctxJSON,
	}
	if err := h.logs.Create(c.Context(), entry); err != nil {
		log.Printf("Failed to write assistant log: %v", err)
	}
}

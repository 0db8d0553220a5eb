package server

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/flowdeck/flowdeck-server/internal/models"
)

type chatRequest struct {
	Message string         `json:"message"`
	Context map[string]any `json:"context"`
}

// Chat relays a conversational message to the assistant. The reply may carry
// a routine or event details the client can act on.
func (h *Handlers) Chat(c *fiber.Ctx) error {
	if h.ai == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Assistant is not configured"})
	}

	var req chatRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}

	reply, err := h.ai.GenerateRoutine(c.Context(), req.Message, req.Context)
	if err != nil {
		log.Printf("Assistant chat failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Something went wrong, try again"})
	}

	h.logInteraction(c, currentUserID(c), req.Message, models.LogChat, fiber.Map{
		"has_routine": reply.Routine != nil,
	})

	return c.JSON(reply)
}

const askSystemPrompt = `Tu es un assistant de productivité bienveillant. Réponds en français, de façon concise et actionnable.`

type askRequest struct {
	Question string `json:"question"`
}

// Ask answers a one-off free-text question, without the structured routine
// machinery Chat goes through.
func (h *Handlers) Ask(c *fiber.Ctx) error {
	if h.ai == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Assistant is not configured"})
	}

	var req askRequest
	if err := c.BodyParser(&req); err != nil || req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Question is required"})
	}

	answer, err := h.ai.Reply(c.Context(), askSystemPrompt, req.Question)
	if err != nil {
		log.Printf("Assistant reply failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Something went wrong, try again"})
	}

	h.logInteraction(c, currentUserID(c), req.Question, models.LogChat, nil)

	return c.JSON(fiber.Map{"response": answer})
}

// ListAssistantLogs returns the caller's most recent assistant interactions.
func (h *Handlers) ListAssistantLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := h.logs.GetRecent(c.Context(), currentUserID(c), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	if entries == nil {
		entries = []*models.AssistantLog{}
	}
	return c.JSON(fiber.Map{"logs": entries})
}

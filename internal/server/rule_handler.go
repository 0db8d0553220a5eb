package server

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/flowdeck/flowdeck-server/internal/models"
	"github.com/flowdeck/flowdeck-server/internal/schedule"
)

type createRuleRequest struct {
	Title           string  `json:"title"`
	StartTime       string  `json:"start_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Days            [7]bool `json:"days"`
	Category        string  `json:"category"`
}

func (h *Handlers) CreateRule(c *fiber.Ctx) error {
	var req createRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}
	if req.DurationMinutes <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Duration must be positive"})
	}
	if _, _, err := schedule.ParseClock(req.StartTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Start time must be HH:MM"})
	}

	rule := &models.RecurringRule{
		UserID:          currentUserID(c),
		Title:           req.Title,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Days:            req.Days,
		Category:        req.Category,
		Color:           models.RuleColor(req.Category),
		Active:          true,
	}
	if !rule.HasDay() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Select at least one day"})
	}

	if err := h.rules.Create(c.Context(), rule); err != nil {
		log.Printf("Failed to create rule: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"rule": rule})
}

func (h *Handlers) ListRules(c *fiber.Ctx) error {
	rules, err := h.rules.GetActiveByUserID(c.Context(), currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"rules": rules})
}

// PreviewRule returns the rule's next occurrence timestamps.
func (h *Handlers) PreviewRule(c *fiber.Ctx) error {
	ruleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rule id"})
	}
	n := c.QueryInt("n", 5)
	if n < 1 || n > 50 {
		n = 5
	}

	rule, err := h.rules.GetByID(c.Context(), ruleID, currentUserID(c))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rule not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	occurrences, err := schedule.UpcomingOccurrences(rule, time.Now(), n)
	if err != nil {
		log.Printf("Failed to preview rule %s: %v", ruleID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"occurrences": occurrences})
}

type setRuleActiveRequest struct {
	Active bool `json:"active"`
}

// SetRuleActive pauses or resumes a rule. Paused rules are skipped by the
// daily expansion; events already generated are untouched.
func (h *Handlers) SetRuleActive(c *fiber.Ctx) error {
	ruleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rule id"})
	}

	var req setRuleActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.rules.SetActive(c.Context(), ruleID, currentUserID(c), req.Active); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"success": true, "active": req.Active})
}

// DeleteRule deactivates and removes the rule; events it already generated
// are kept.
func (h *Handlers) DeleteRule(c *fiber.Ctx) error {
	ruleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rule id"})
	}
	if err := h.rules.Delete(c.Context(), ruleID, currentUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"success": true})
}

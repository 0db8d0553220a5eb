package server

import (
	"errors"
	"log"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/flowdeck/flowdeck-server/internal/models"
	"github.com/flowdeck/flowdeck-server/internal/schedule"
)

// AddQuickEvent composes and persists an ad-hoc slot, plus its trailing
// pause when requested. The two inserts are individual, matching the quick
// add flow: a pause failure does not roll back the primary event.
func (h *Handlers) AddQuickEvent(c *fiber.Ctx) error {
	var input schedule.QuickEventInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := schedule.Compose(input, currentUserID(c), time.Local)
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Msg})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	if err := h.events.Create(c.Context(), result.Primary); err != nil {
		log.Printf("Failed to insert quick event: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	response := fiber.Map{"success": true, "event": result.Primary}
	if result.Pause != nil {
		if err := h.events.Create(c.Context(), result.Pause); err != nil {
			log.Printf("Failed to insert pause event: %v", err)
			response["pause_error"] = "Pause event could not be created"
		} else {
			response["pause"] = result.Pause
		}
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// RunRecurring expands today's due recurring rules for the caller. Safe to
// call repeatedly: already-generated (rule, day) pairs are skipped.
func (h *Handlers) RunRecurring(c *fiber.Ctx) error {
	generated, err := h.sched.GenerateForUser(c.Context(), currentUserID(c), time.Now())
	if err != nil {
		log.Printf("Failed to generate recurring events: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	if generated == nil {
		generated = []string{}
	}
	return c.JSON(fiber.Map{"success": true, "generated": generated})
}

func (h *Handlers) ListEvents(c *fiber.Ctx) error {
	userID := currentUserID(c)

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		from, err1 := time.Parse(time.RFC3339, fromStr)
		to, err2 := time.Parse(time.RFC3339, toStr)
		if err1 != nil || err2 != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from/to must be RFC 3339 timestamps"})
		}
		events, err := h.events.GetByDateRange(c.Context(), userID, from, to)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
		}
		return c.JSON(fiber.Map{"events": events})
	}

	events, err := h.events.GetByUserID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"events": events})
}

type updateEventRequest struct {
	Title *string    `json:"title"`
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// UpdateEvent handles drag/resize and retitling from the calendar.
func (h *Handlers) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event id"})
	}

	var req updateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID := currentUserID(c)
	event, err := h.events.GetByID(c.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Start != nil {
		event.Start = *req.Start
	}
	if req.End != nil {
		event.End = *req.End
	}
	if !event.End.After(event.Start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End must be after start"})
	}

	if err := h.events.Update(c.Context(), eventID, userID, event.Title, event.Start, event.End); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"success": true, "event": event})
}

func (h *Handlers) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event id"})
	}
	if err := h.events.Delete(c.Context(), eventID, currentUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// ExportICS serves the caller's calendar as an iCalendar feed.
func (h *Handlers) ExportICS(c *fiber.Ctx) error {
	userID := currentUserID(c)
	events, err := h.events.GetByUserID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	h.logInteraction(c, userID, "Calendar exported", models.LogCalendarSync, fiber.Map{
		"events": len(events),
	})

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="flowdeck.ics"`)
	return c.SendString(buildCalendar(events).Serialize())
}

func buildCalendar(events []*models.Event) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Flowdeck//Calendar//FR")

	for _, event := range events {
		entry := cal.AddEvent(event.EventID.String())
		entry.SetCreatedTime(event.CreatedAt)
		entry.SetStartAt(event.Start)
		entry.SetEndAt(event.End)
		entry.SetSummary(event.Title)
		if event.Location != "" {
			entry.SetLocation(event.Location)
		}
	}
	return cal
}

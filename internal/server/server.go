package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/flowdeck/flowdeck-server/internal/ai"
	"github.com/flowdeck/flowdeck-server/internal/config"
	"github.com/flowdeck/flowdeck-server/internal/database"
	"github.com/flowdeck/flowdeck-server/internal/repository"
	"github.com/flowdeck/flowdeck-server/internal/scheduler"
)

type Handlers struct {
	cfg   *config.Config
	ai    *ai.Client
	sched *scheduler.Scheduler

	users    *repository.UserRepository
	events   *repository.EventRepository
	rules    *repository.RuleRepository
	routines *repository.RoutineRepository
	tasks    *repository.TaskRepository
	logs     *repository.LogRepository
}

// New builds the Fiber app with all routes wired.
func New(cfg *config.Config, db *database.DB, aiClient *ai.Client, sched *scheduler.Scheduler) *fiber.App {
	h := &Handlers{
		cfg:      cfg,
		ai:       aiClient,
		sched:    sched,
		users:    repository.NewUserRepository(db),
		events:   repository.NewEventRepository(db),
		rules:    repository.NewRuleRepository(db),
		routines: repository.NewRoutineRepository(db),
		tasks:    repository.NewTaskRepository(db),
		logs:     repository.NewLogRepository(db),
	}

	app := fiber.New(fiber.Config{
		AppName: "Flowdeck",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:5173,http://localhost:3000",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))

	api := app.Group("/api")

	// Rate limiter for auth endpoints (5 requests per minute per IP)
	authLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many attempts. Please try again later.",
			})
		},
	})

	api.Post("/register", authLimiter, h.Register)
	api.Post("/login", authLimiter, h.Login)

	auth := AuthRequired(cfg.JWTSecret)

	api.Post("/routines/plan", auth, h.PlanRoutine)
	api.Post("/routines/generate", auth, h.GenerateRoutine)
	api.Get("/routines", auth, h.ListRoutines)
	api.Post("/routines/:id/activate", auth, h.ActivateRoutine)
	api.Delete("/routines/:id", auth, h.DeleteRoutine)

	api.Post("/events/quick", auth, h.AddQuickEvent)
	api.Post("/events/recurring/run", auth, h.RunRecurring)
	api.Get("/events", auth, h.ListEvents)
	api.Get("/events/export.ics", auth, h.ExportICS)
	api.Patch("/events/:id", auth, h.UpdateEvent)
	api.Delete("/events/:id", auth, h.DeleteEvent)

	api.Post("/rules", auth, h.CreateRule)
	api.Get("/rules", auth, h.ListRules)
	api.Get("/rules/:id/preview", auth, h.PreviewRule)
	api.Patch("/rules/:id/active", auth, h.SetRuleActive)
	api.Delete("/rules/:id", auth, h.DeleteRule)

	api.Post("/tasks/extract", auth, h.ExtractTasks)
	api.Get("/tasks", auth, h.ListTasks)
	api.Patch("/tasks/:id/done", auth, h.SetTaskDone)
	api.Delete("/tasks/:id", auth, h.DeleteTask)

	api.Post("/assistant/chat", auth, h.Chat)
	api.Post("/assistant/ask", auth, h.Ask)
	api.Get("/assistant/logs", auth, h.ListAssistantLogs)

	return app
}

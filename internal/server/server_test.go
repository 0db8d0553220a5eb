package server

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/flowdeck/flowdeck-server/internal/config"
	"github.com/flowdeck/flowdeck-server/internal/database"
)

// Unauthenticated requests must hit the auth guard, not a 404: a 401 proves
// the route is registered and protected.
func TestProtectedRoutesAreRegistered(t *testing.T) {
	app := New(&config.Config{JWTSecret: "test-secret"}, &database.DB{}, nil, nil)

	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/api/routines/plan"},
		{"GET", "/api/routines"},
		{"POST", "/api/events/quick"},
		{"POST", "/api/events/recurring/run"},
		{"GET", "/api/events"},
		{"GET", "/api/events/export.ics"},
		{"POST", "/api/rules"},
		{"PATCH", "/api/rules/00000000-0000-0000-0000-000000000000/active"},
		{"POST", "/api/tasks/extract"},
		{"POST", "/api/assistant/chat"},
		{"POST", "/api/assistant/ask"},
		{"GET", "/api/assistant/logs"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

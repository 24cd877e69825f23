package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/haewon-dev/tutorlog-api/internal/config"
	"github.com/haewon-dev/tutorlog-api/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StudentHandler  *handler.StudentHandler
	FeedbackHandler *handler.FeedbackHandler
	ScheduleHandler *handler.ScheduleHandler
	CalendarHandler *handler.CalendarHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students"))
	}

	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(api.Group("/feedback"))
	}

	if deps.ScheduleHandler != nil {
		deps.ScheduleHandler.Register(api.Group("/scheduled-classes"))
	}

	if deps.CalendarHandler != nil {
		deps.CalendarHandler.Register(api.Group("/calendar"))
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

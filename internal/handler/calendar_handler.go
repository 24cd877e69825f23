package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/haewon-dev/tutorlog-api/internal/observability"
	"github.com/haewon-dev/tutorlog-api/internal/service"
	"github.com/haewon-dev/tutorlog-api/internal/utils"
)

// CalendarHandler wires the calendar-status HTTP route.
type CalendarHandler struct {
	calendar service.CalendarService
	logger   zerolog.Logger
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(calendar service.CalendarService, logger zerolog.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendar: calendar,
		logger:   logger.With().Str("component", "calendar_handler").Logger(),
	}
}

// Register attaches the calendar endpoint to the router group.
func (h *CalendarHandler) Register(router fiber.Router) {
	router.Get("/status", h.status)
}

// status serves the per-day feedback matrix. Bad or missing range inputs are
// not an error here; the service substitutes the current-month range.
func (h *CalendarHandler) status(c *fiber.Ctx) error {
	response, err := h.calendar.BuildCalendar(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.logger.Error().Err(err).Msg("calendar build failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	observability.CalendarRangeDays().Observe(float64(len(response.Calendar)))

	return c.JSON(response)
}

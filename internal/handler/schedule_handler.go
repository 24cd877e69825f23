package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/haewon-dev/tutorlog-api/internal/dto"
	"github.com/haewon-dev/tutorlog-api/internal/service"
	"github.com/haewon-dev/tutorlog-api/internal/utils"
)

// ScheduleHandler wires scheduled-class HTTP routes.
type ScheduleHandler struct {
	schedules service.ScheduleService
	logger    zerolog.Logger
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(schedules service.ScheduleService, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		schedules: schedules,
		logger:    logger.With().Str("component", "schedule_handler").Logger(),
	}
}

// Register attaches scheduled-class endpoints to the router group.
func (h *ScheduleHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.deactivate)
}

func (h *ScheduleHandler) list(c *fiber.Ctx) error {
	classes, err := h.schedules.ListActive(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return c.JSON(dto.ScheduleListResponse{ScheduledClasses: classes})
}

func (h *ScheduleHandler) create(c *fiber.Ctx) error {
	var payload dto.ScheduleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	class, err := h.schedules.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "student id, day of week and start time are required")
		}
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(class)
}

func (h *ScheduleHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ScheduleUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	class, err := h.schedules.Update(c.Context(), id, payload)
	if err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "scheduled class not found")
		}
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid schedule payload")
		}
		return h.internalError(c, err)
	}

	return c.JSON(class)
}

func (h *ScheduleHandler) deactivate(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.schedules.Deactivate(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "scheduled class not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, "scheduled class deactivated")
}

func (h *ScheduleHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Str("path", c.Path()).Msg("schedule request failed")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}

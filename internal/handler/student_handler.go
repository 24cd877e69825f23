package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/haewon-dev/tutorlog-api/internal/dto"
	"github.com/haewon-dev/tutorlog-api/internal/service"
	"github.com/haewon-dev/tutorlog-api/internal/utils"
)

// StudentHandler wires student HTTP routes.
type StudentHandler struct {
	students  service.StudentService
	schedules service.ScheduleService
	logger    zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(students service.StudentService, schedules service.ScheduleService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		students:  students,
		schedules: schedules,
		logger:    logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches student endpoints to the router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Delete("/:id", h.delete)
	router.Put("/:id/notes", h.updateNotes)
	router.Get("/:id/scheduled-classes", h.listSchedules)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	students, err := h.students.List(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return c.JSON(dto.StudentListResponse{Students: students})
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.students.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "student name is required")
		}
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

func (h *StudentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	detail, err := h.students.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		return h.internalError(c, err)
	}

	return c.JSON(detail)
}

func (h *StudentHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.students.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, "student deleted")
}

func (h *StudentHandler) updateNotes(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.StudentNotesRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.students.UpdateNotes(c.Context(), id, payload); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, "student notes updated")
}

func (h *StudentHandler) listSchedules(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	classes, err := h.schedules.ListActiveByStudent(c.Context(), id)
	if err != nil {
		return h.internalError(c, err)
	}

	return c.JSON(dto.ScheduleListResponse{ScheduledClasses: classes})
}

func (h *StudentHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Str("path", c.Path()).Msg("student request failed")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}

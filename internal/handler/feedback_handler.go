package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/haewon-dev/tutorlog-api/internal/dto"
	"github.com/haewon-dev/tutorlog-api/internal/service"
	"github.com/haewon-dev/tutorlog-api/internal/utils"
)

// FeedbackHandler wires feedback HTTP routes.
type FeedbackHandler struct {
	feedbacks service.FeedbackService
	logger    zerolog.Logger
}

// NewFeedbackHandler constructs the handler.
func NewFeedbackHandler(feedbacks service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbacks: feedbacks,
		logger:    logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// Register attaches feedback endpoints to the router group. The mark-absent
// route is registered before the studentID wildcard so it never shadows it.
func (h *FeedbackHandler) Register(router fiber.Router) {
	router.Post("/mark-absent", h.markAbsent)
	router.Post("", h.create)
	router.Get("/:studentID", h.listByStudent)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *FeedbackHandler) create(c *fiber.Ctx) error {
	var payload dto.FeedbackCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	feedback, err := h.feedbacks.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "student id is required")
		}
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

func (h *FeedbackHandler) listByStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	feedbacks, err := h.feedbacks.ListByStudent(c.Context(), studentID)
	if err != nil {
		return h.internalError(c, err)
	}

	return c.JSON(dto.FeedbackListResponse{Feedbacks: feedbacks})
}

func (h *FeedbackHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.FeedbackUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	feedback, err := h.feedbacks.Update(c.Context(), id, payload)
	if err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "feedback not found")
		}
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid feedback payload")
		}
		return h.internalError(c, err)
	}

	return c.JSON(feedback)
}

func (h *FeedbackHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.feedbacks.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "feedback not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, "feedback deleted")
}

// markAbsent responds 200 when an existing feedback row was flagged and 201
// when a synthetic absence record was created. A date that fails to parse
// after validation surfaces as a generic server error.
func (h *FeedbackHandler) markAbsent(c *fiber.Ctx) error {
	var payload dto.MarkAbsentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	feedback, created, err := h.feedbacks.MarkAbsent(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "student id and class date are required")
		}
		return h.internalError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}

	return c.Status(status).JSON(feedback)
}

func (h *FeedbackHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Str("path", c.Path()).Msg("feedback request failed")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/haewon-dev/tutorlog-api/internal/dto"
	"github.com/haewon-dev/tutorlog-api/internal/models"
	"github.com/haewon-dev/tutorlog-api/internal/repository"
	"github.com/haewon-dev/tutorlog-api/internal/timeutil"
)

// ErrFeedbackNotFound indicates the requested feedback record does not exist.
var ErrFeedbackNotFound = errors.New("feedback not found")

// absenceContent is the synthetic class-content marker written by MarkAbsent.
const absenceContent = "Student absent"

// FeedbackService exposes feedback domain use cases, including the
// mark-absent flow.
type FeedbackService interface {
	ListByStudent(ctx context.Context, studentID uint) ([]dto.FeedbackResponse, error)
	Create(ctx context.Context, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error)
	Update(ctx context.Context, id uint, payload dto.FeedbackUpdateRequest) (dto.FeedbackResponse, error)
	Delete(ctx context.Context, id uint) error
	MarkAbsent(ctx context.Context, payload dto.MarkAbsentRequest) (dto.FeedbackResponse, bool, error)
}

type feedbackService struct {
	feedbacks   repository.FeedbackRepository
	validator   *validator.Validate
	invalidator *CalendarInvalidator
	loc         *time.Location
	logger      zerolog.Logger
	now         func() time.Time
}

// NewFeedbackService builds a new feedback service.
func NewFeedbackService(feedbacks repository.FeedbackRepository, validate *validator.Validate, invalidator *CalendarInvalidator, loc *time.Location, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		feedbacks:   feedbacks,
		validator:   validate,
		invalidator: invalidator,
		loc:         loc,
		logger:      logger.With().Str("component", "feedback_service").Logger(),
		now:         time.Now,
	}
}

func (s *feedbackService) ListByStudent(ctx context.Context, studentID uint) ([]dto.FeedbackResponse, error) {
	feedbacks, err := s.feedbacks.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewFeedbackResponseSlice(feedbacks), nil
}

// Create logs a new feedback record. An unparsable or missing class date
// falls back to the current wall-clock time; duplicate feedback for the same
// (student, day) pair is permitted here, only the mark-absent flow dedupes.
func (s *feedbackService) Create(ctx context.Context, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	classDate, err := timeutil.ParseFlexible(payload.ClassDate, s.loc)
	if err != nil {
		s.logger.Warn().Str("class_date", payload.ClassDate).Msg("unparsable class date, using current time")
		classDate = s.now().In(s.loc)
	}

	feedback := models.Feedback{
		StudentID:          payload.StudentID,
		ClassDate:          classDate,
		Textbook:           sanitize(payload.Textbook),
		HomeworkCompletion: payload.HomeworkCompletion,
		ClassContent:       sanitize(payload.ClassContent),
		ParentMessage:      sanitize(payload.ParentMessage),
	}

	if err := s.feedbacks.Create(ctx, &feedback); err != nil {
		return dto.FeedbackResponse{}, err
	}

	s.invalidator.Invalidate(ctx)
	s.logger.Info().Uint("feedback_id", feedback.ID).Uint("student_id", feedback.StudentID).Msg("feedback created")

	return dto.NewFeedbackResponse(feedback), nil
}

func (s *feedbackService) Update(ctx context.Context, id uint, payload dto.FeedbackUpdateRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	feedback, err := s.feedbacks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrFeedbackNotFound
		}

		return dto.FeedbackResponse{}, err
	}

	if payload.ClassDate != nil {
		// An unparsable date keeps the stored value, other fields still apply.
		if classDate, err := timeutil.ParseFlexible(*payload.ClassDate, s.loc); err == nil {
			feedback.ClassDate = classDate
		}
	}

	if payload.Textbook != nil {
		feedback.Textbook = sanitize(*payload.Textbook)
	}

	if payload.HomeworkCompletion != nil {
		feedback.HomeworkCompletion = payload.HomeworkCompletion
	}

	if payload.ClassContent != nil {
		feedback.ClassContent = sanitize(*payload.ClassContent)
	}

	if payload.ParentMessage != nil {
		feedback.ParentMessage = sanitize(*payload.ParentMessage)
	}

	if payload.IsAbsent != nil {
		feedback.IsAbsent = *payload.IsAbsent
	}

	if err := s.feedbacks.Update(ctx, &feedback); err != nil {
		return dto.FeedbackResponse{}, err
	}

	s.invalidator.Invalidate(ctx)
	s.logger.Info().Uint("feedback_id", feedback.ID).Msg("feedback updated")

	return dto.NewFeedbackResponse(feedback), nil
}

func (s *feedbackService) Delete(ctx context.Context, id uint) error {
	if err := s.feedbacks.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeedbackNotFound
		}

		return err
	}

	s.invalidator.Invalidate(ctx)
	s.logger.Info().Uint("feedback_id", id).Msg("feedback deleted")

	return nil
}

// MarkAbsent flags the student's class on the given day as missed. When
// feedback already exists for that day it is updated in place, otherwise a
// synthetic absence record is created. The returned bool reports whether a
// new record was created. Calling it twice for the same day never produces a
// second row.
func (s *feedbackService) MarkAbsent(ctx context.Context, payload dto.MarkAbsentRequest) (dto.FeedbackResponse, bool, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, false, err
	}

	classDate, err := timeutil.ParseFlexible(payload.ClassDate, s.loc)
	if err != nil {
		return dto.FeedbackResponse{}, false, fmt.Errorf("parse class date: %w", err)
	}

	dayStart := timeutil.StartOfDay(classDate, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	existing, err := s.feedbacks.FindByStudentAndDay(ctx, payload.StudentID, dayStart, dayEnd)
	if err == nil {
		existing.IsAbsent = true
		if err := s.feedbacks.Update(ctx, &existing); err != nil {
			return dto.FeedbackResponse{}, false, err
		}

		s.invalidator.Invalidate(ctx)
		s.logger.Info().Uint("feedback_id", existing.ID).Uint("student_id", payload.StudentID).Msg("existing feedback marked absent")

		return dto.NewFeedbackResponse(existing), false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.FeedbackResponse{}, false, err
	}

	feedback := models.Feedback{
		StudentID:     payload.StudentID,
		ClassDate:     classDate,
		IsAbsent:      true,
		ClassContent:  absenceContent,
		ParentMessage: "",
	}

	if err := s.feedbacks.Create(ctx, &feedback); err != nil {
		return dto.FeedbackResponse{}, false, err
	}

	s.invalidator.Invalidate(ctx)
	s.logger.Info().Uint("feedback_id", feedback.ID).Uint("student_id", payload.StudentID).Msg("absence feedback created")

	return dto.NewFeedbackResponse(feedback), true, nil
}

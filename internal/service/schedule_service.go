package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/haewon-dev/tutorlog-api/internal/dto"
	"github.com/haewon-dev/tutorlog-api/internal/models"
	"github.com/haewon-dev/tutorlog-api/internal/repository"
)

// ErrScheduleNotFound indicates the requested scheduled class does not exist.
var ErrScheduleNotFound = errors.New("scheduled class not found")

const defaultDurationMinutes = 60

// ScheduleService exposes recurring-class domain use cases.
type ScheduleService interface {
	ListActive(ctx context.Context) ([]dto.ScheduleResponse, error)
	ListActiveByStudent(ctx context.Context, studentID uint) ([]dto.ScheduleResponse, error)
	Create(ctx context.Context, payload dto.ScheduleCreateRequest) (dto.ScheduleResponse, error)
	Update(ctx context.Context, id uint, payload dto.ScheduleUpdateRequest) (dto.ScheduleResponse, error)
	Deactivate(ctx context.Context, id uint) error
}

type scheduleService struct {
	schedules   repository.ScheduleRepository
	validator   *validator.Validate
	invalidator *CalendarInvalidator
	logger      zerolog.Logger
}

// NewScheduleService builds a new schedule service.
func NewScheduleService(schedules repository.ScheduleRepository, validate *validator.Validate, invalidator *CalendarInvalidator, logger zerolog.Logger) ScheduleService {
	return &scheduleService{
		schedules:   schedules,
		validator:   validate,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "schedule_service").Logger(),
	}
}

func (s *scheduleService) ListActive(ctx context.Context) ([]dto.ScheduleResponse, error) {
	classes, err := s.schedules.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewScheduleResponseSlice(classes), nil
}

func (s *scheduleService) ListActiveByStudent(ctx context.Context, studentID uint) ([]dto.ScheduleResponse, error) {
	classes, err := s.schedules.ListActiveByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewScheduleResponseSlice(classes), nil
}

func (s *scheduleService) Create(ctx context.Context, payload dto.ScheduleCreateRequest) (dto.ScheduleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ScheduleResponse{}, err
	}

	class := models.ScheduledClass{
		StudentID:       payload.StudentID,
		DayOfWeek:       *payload.DayOfWeek,
		StartTime:       payload.StartTime,
		DurationMinutes: defaultDurationMinutes,
		IsActive:        true,
	}

	if payload.DurationMinutes != nil {
		class.DurationMinutes = *payload.DurationMinutes
	}

	if payload.IsActive != nil {
		class.IsActive = *payload.IsActive
	}

	if err := s.schedules.Create(ctx, &class); err != nil {
		return dto.ScheduleResponse{}, err
	}

	s.invalidator.Invalidate(ctx)
	s.logger.Info().Uint("schedule_id", class.ID).Uint("student_id", class.StudentID).Msg("scheduled class created")

	return dto.NewScheduleResponse(class), nil
}

func (s *scheduleService) Update(ctx context.Context, id uint, payload dto.ScheduleUpdateRequest) (dto.ScheduleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ScheduleResponse{}, err
	}

	class, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ScheduleResponse{}, ErrScheduleNotFound
		}

		return dto.ScheduleResponse{}, err
	}

	if payload.StudentID != nil {
		class.StudentID = *payload.StudentID
	}

	if payload.DayOfWeek != nil {
		class.DayOfWeek = *payload.DayOfWeek
	}

	if payload.StartTime != nil {
		class.StartTime = *payload.StartTime
	}

	if payload.DurationMinutes != nil {
		class.DurationMinutes = *payload.DurationMinutes
	}

	if payload.IsActive != nil {
		class.IsActive = *payload.IsActive
	}

	if err := s.schedules.Update(ctx, &class); err != nil {
		return dto.ScheduleResponse{}, err
	}

	s.invalidator.Invalidate(ctx)
	s.logger.Info().Uint("schedule_id", class.ID).Msg("scheduled class updated")

	return dto.NewScheduleResponse(class), nil
}

// Deactivate soft-deletes the schedule; the row survives but drops out of
// every read path and all future calendar builds.
func (s *scheduleService) Deactivate(ctx context.Context, id uint) error {
	if err := s.schedules.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}

		return err
	}

	s.invalidator.Invalidate(ctx)
	s.logger.Info().Uint("schedule_id", id).Msg("scheduled class deactivated")

	return nil
}

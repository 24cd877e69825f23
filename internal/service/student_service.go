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

// ErrStudentNotFound indicates the requested student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// StudentService exposes student domain use cases.
type StudentService interface {
	List(ctx context.Context) ([]dto.StudentResponse, error)
	Get(ctx context.Context, id uint) (dto.StudentDetailResponse, error)
	Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	UpdateNotes(ctx context.Context, id uint, payload dto.StudentNotesRequest) error
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	students    repository.StudentRepository
	feedbacks   repository.FeedbackRepository
	validator   *validator.Validate
	invalidator *CalendarInvalidator
	logger      zerolog.Logger
}

// NewStudentService builds a new student service.
func NewStudentService(students repository.StudentRepository, feedbacks repository.FeedbackRepository, validate *validator.Validate, invalidator *CalendarInvalidator, logger zerolog.Logger) StudentService {
	return &studentService{
		students:    students,
		feedbacks:   feedbacks,
		validator:   validate,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentDetailResponse, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDetailResponse{}, ErrStudentNotFound
		}

		return dto.StudentDetailResponse{}, err
	}

	feedbacks, err := s.feedbacks.ListNewestByStudent(ctx, id)
	if err != nil {
		return dto.StudentDetailResponse{}, err
	}

	return dto.StudentDetailResponse{
		Student:   dto.NewStudentResponse(student),
		Feedbacks: dto.NewFeedbackResponseSlice(feedbacks),
	}, nil
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		Name:    payload.Name,
		Contact: payload.Contact,
		Notes:   sanitize(payload.Notes),
	}

	if err := s.students.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student created")

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) UpdateNotes(ctx context.Context, id uint, payload dto.StudentNotesRequest) error {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}

		return err
	}

	if payload.Notes == nil {
		return nil
	}

	student.Notes = sanitize(*payload.Notes)
	if err := s.students.Update(ctx, &student); err != nil {
		return err
	}

	s.logger.Info().Uint("student_id", id).Msg("student notes updated")

	return nil
}

// Delete removes the student together with all owned feedback and scheduled
// classes, so later calendar builds never reference the student again.
func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.students.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}

		return err
	}

	s.invalidator.Invalidate(ctx)
	s.logger.Info().Uint("student_id", id).Msg("student deleted with feedback and schedules")

	return nil
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/haewon-dev/tutorlog-api/internal/models"
)

// FeedbackRepository provides access to feedback records.
type FeedbackRepository interface {
	GetByID(ctx context.Context, id uint) (models.Feedback, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Feedback, error)
	ListNewestByStudent(ctx context.Context, studentID uint) ([]models.Feedback, error)
	FindByStudentAndDay(ctx context.Context, studentID uint, dayStart, dayEnd time.Time) (models.Feedback, error)
	Create(ctx context.Context, feedback *models.Feedback) error
	Update(ctx context.Context, feedback *models.Feedback) error
	Delete(ctx context.Context, id uint) error
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository constructs a feedback repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) GetByID(ctx context.Context, id uint) (models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).First(&feedback, id).Error; err != nil {
		return models.Feedback{}, err
	}

	return feedback, nil
}

func (r *feedbackRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("class_date DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}

	return feedbacks, nil
}

func (r *feedbackRepository) ListNewestByStudent(ctx context.Context, studentID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}

	return feedbacks, nil
}

// FindByStudentAndDay returns the feedback logged for a student within the
// half-open [dayStart, dayEnd) window. Duplicate rows for the same day are
// possible via plain creation; the lowest id wins so the result is a stable
// tie-break rather than whatever the store happens to return first.
func (r *feedbackRepository) FindByStudentAndDay(ctx context.Context, studentID uint, dayStart, dayEnd time.Time) (models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND class_date >= ? AND class_date < ?", studentID, dayStart, dayEnd).
		Order("id ASC").
		First(&feedback).Error
	if err != nil {
		return models.Feedback{}, err
	}

	return feedback, nil
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) Update(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Save(feedback).Error
}

func (r *feedbackRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Feedback{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/haewon-dev/tutorlog-api/internal/models"
)

// ScheduleRepository provides access to recurring weekly class schedules.
// Every read filters on is_active; deactivated rows stay in the table but
// never surface.
type ScheduleRepository interface {
	ListActive(ctx context.Context) ([]models.ScheduledClass, error)
	ListActiveByWeekday(ctx context.Context, weekday int) ([]models.ScheduledClass, error)
	ListActiveByStudent(ctx context.Context, studentID uint) ([]models.ScheduledClass, error)
	GetByID(ctx context.Context, id uint) (models.ScheduledClass, error)
	Create(ctx context.Context, class *models.ScheduledClass) error
	Update(ctx context.Context, class *models.ScheduledClass) error
	Deactivate(ctx context.Context, id uint) error
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository constructs a schedule repository.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) ListActive(ctx context.Context) ([]models.ScheduledClass, error) {
	var classes []models.ScheduledClass
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&classes).Error
	if err != nil {
		return nil, err
	}

	return classes, nil
}

// ListActiveByWeekday returns the active classes recurring on the given
// weekday (0=Monday..6=Sunday), in primary-key order.
func (r *scheduleRepository) ListActiveByWeekday(ctx context.Context, weekday int) ([]models.ScheduledClass, error) {
	var classes []models.ScheduledClass
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND day_of_week = ?", true, weekday).
		Order("id ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *scheduleRepository) ListActiveByStudent(ctx context.Context, studentID uint) ([]models.ScheduledClass, error) {
	var classes []models.ScheduledClass
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND student_id = ?", true, studentID).
		Find(&classes).Error
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id uint) (models.ScheduledClass, error) {
	var class models.ScheduledClass
	if err := r.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return models.ScheduledClass{}, err
	}

	return class, nil
}

func (r *scheduleRepository) Create(ctx context.Context, class *models.ScheduledClass) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *scheduleRepository) Update(ctx context.Context, class *models.ScheduledClass) error {
	return r.db.WithContext(ctx).Save(class).Error
}

// Deactivate soft-deletes a schedule by clearing its active flag.
func (r *scheduleRepository) Deactivate(ctx context.Context, id uint) error {
	var class models.ScheduledClass
	if err := r.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&class).Update("is_active", false).Error
}

package dto

import (
	"time"

	"github.com/haewon-dev/tutorlog-api/internal/models"
)

// ScheduleCreateRequest describes the payload for adding a recurring class.
// DayOfWeek is a pointer so Monday (0) survives required-field validation.
type ScheduleCreateRequest struct {
	StudentID       uint   `json:"student_id" validate:"required"`
	DayOfWeek       *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	DurationMinutes *int   `json:"duration_minutes" validate:"omitempty,min=1"`
	IsActive        *bool  `json:"is_active"`
}

// ScheduleUpdateRequest describes a partial schedule update. Only non-nil
// fields are applied.
type ScheduleUpdateRequest struct {
	StudentID       *uint   `json:"student_id"`
	DayOfWeek       *int    `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartTime       *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=1"`
	IsActive        *bool   `json:"is_active"`
}

// ScheduleResponse is the serialized representation returned to API clients.
type ScheduleResponse struct {
	ID              uint      `json:"id"`
	StudentID       uint      `json:"student_id"`
	DayOfWeek       int       `json:"day_of_week"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// ScheduleListResponse wraps the scheduled-classes collection.
type ScheduleListResponse struct {
	ScheduledClasses []ScheduleResponse `json:"scheduled_classes"`
}

// NewScheduleResponse converts a model into a DTO.
func NewScheduleResponse(model models.ScheduledClass) ScheduleResponse {
	return ScheduleResponse{
		ID:              model.ID,
		StudentID:       model.StudentID,
		DayOfWeek:       model.DayOfWeek,
		StartTime:       model.StartTime,
		DurationMinutes: model.DurationMinutes,
		IsActive:        model.IsActive,
		CreatedAt:       model.CreatedAt,
	}
}

// NewScheduleResponseSlice converts a slice of models into DTOs.
func NewScheduleResponseSlice(classes []models.ScheduledClass) []ScheduleResponse {
	responses := make([]ScheduleResponse, 0, len(classes))
	for _, class := range classes {
		responses = append(responses, NewScheduleResponse(class))
	}

	return responses
}

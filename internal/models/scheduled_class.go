package models

import "time"

// ScheduledClass is a recurring weekly commitment for one student,
// independent of any specific calendar date. DayOfWeek uses 0=Monday through
// 6=Sunday. Rows are soft-deleted by clearing IsActive; read paths filter on
// it.
type ScheduledClass struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StudentID       uint      `gorm:"not null;index" json:"student_id"`
	DayOfWeek       int       `gorm:"not null" json:"day_of_week"`
	StartTime       string    `gorm:"size:5;not null" json:"start_time"`
	DurationMinutes int       `gorm:"default:60" json:"duration_minutes"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

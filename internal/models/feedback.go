package models

import "time"

// Feedback is a dated record of one actual class session, or an absence
// marker created by the mark-absent flow. Matching against the calendar uses
// only the day component of ClassDate.
type Feedback struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	StudentID          uint      `gorm:"not null;index" json:"student_id"`
	ClassDate          time.Time `gorm:"not null" json:"class_date"`
	Textbook           string    `gorm:"size:200" json:"textbook"`
	HomeworkCompletion *int      `json:"homework_completion"`
	ClassContent       string    `gorm:"type:text" json:"class_content"`
	ParentMessage      string    `gorm:"type:text" json:"parent_message"`
	IsAbsent           bool      `gorm:"default:false" json:"is_absent"`
	CreatedAt          time.Time `json:"created_at"`
}

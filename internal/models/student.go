package models

import "time"

// Student represents one learner in the tutoring practice. Its feedback and
// scheduled-class rows are owned records: deleting a student removes both.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Contact   string    `gorm:"size:100" json:"contact"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

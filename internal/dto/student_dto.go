package dto

import (
	"time"

	"github.com/haewon-dev/tutorlog-api/internal/models"
)

// StudentCreateRequest describes the payload for registering a new student.
type StudentCreateRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Contact string `json:"contact" validate:"omitempty,max=100"`
	Notes   string `json:"notes"`
}

// StudentNotesRequest carries a notes update. A nil Notes leaves the stored
// value untouched.
type StudentNotesRequest struct {
	Notes *string `json:"notes"`
}

// StudentResponse is the serialized representation returned to API clients.
type StudentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentDetailResponse combines a student with its feedback history.
type StudentDetailResponse struct {
	Student   StudentResponse    `json:"student"`
	Feedbacks []FeedbackResponse `json:"feedbacks"`
}

// StudentListResponse wraps the students collection.
type StudentListResponse struct {
	Students []StudentResponse `json:"students"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:        model.ID,
		Name:      model.Name,
		Contact:   model.Contact,
		Notes:     model.Notes,
		CreatedAt: model.CreatedAt,
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}

	return responses
}

package dto

import (
	"time"

	"github.com/haewon-dev/tutorlog-api/internal/models"
)

// FeedbackCreateRequest describes the payload for logging class feedback.
// ClassDate accepts a date or datetime string; an unparsable value falls
// back to the current wall-clock time rather than rejecting the request.
type FeedbackCreateRequest struct {
	StudentID          uint   `json:"student_id" validate:"required"`
	ClassDate          string `json:"class_date"`
	Textbook           string `json:"textbook" validate:"omitempty,max=200"`
	HomeworkCompletion *int   `json:"homework_completion"`
	ClassContent       string `json:"class_content"`
	ParentMessage      string `json:"parent_message"`
}

// FeedbackUpdateRequest describes a partial feedback update. Only non-nil
// fields are applied.
type FeedbackUpdateRequest struct {
	ClassDate          *string `json:"class_date"`
	Textbook           *string `json:"textbook" validate:"omitempty,max=200"`
	HomeworkCompletion *int    `json:"homework_completion"`
	ClassContent       *string `json:"class_content"`
	ParentMessage      *string `json:"parent_message"`
	IsAbsent           *bool   `json:"is_absent"`
}

// MarkAbsentRequest identifies the (student, day) pair to flag as absent.
type MarkAbsentRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	ClassDate string `json:"class_date" validate:"required"`
}

// FeedbackResponse is the serialized representation returned to API clients.
type FeedbackResponse struct {
	ID                 uint      `json:"id"`
	StudentID          uint      `json:"student_id"`
	ClassDate          time.Time `json:"class_date"`
	Textbook           string    `json:"textbook"`
	HomeworkCompletion *int      `json:"homework_completion"`
	ClassContent       string    `json:"class_content"`
	ParentMessage      string    `json:"parent_message"`
	IsAbsent           bool      `json:"is_absent"`
	CreatedAt          time.Time `json:"created_at"`
}

// FeedbackListResponse wraps the feedbacks collection.
type FeedbackListResponse struct {
	Feedbacks []FeedbackResponse `json:"feedbacks"`
}

// NewFeedbackResponse converts a model into a DTO.
func NewFeedbackResponse(model models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:                 model.ID,
		StudentID:          model.StudentID,
		ClassDate:          model.ClassDate,
		Textbook:           model.Textbook,
		HomeworkCompletion: model.HomeworkCompletion,
		ClassContent:       model.ClassContent,
		ParentMessage:      model.ParentMessage,
		IsAbsent:           model.IsAbsent,
		CreatedAt:          model.CreatedAt,
	}
}

// NewFeedbackResponseSlice converts a slice of models into DTOs.
func NewFeedbackResponseSlice(feedbacks []models.Feedback) []FeedbackResponse {
	responses := make([]FeedbackResponse, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		responses = append(responses, NewFeedbackResponse(feedback))
	}

	return responses
}

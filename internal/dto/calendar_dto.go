package dto

// ClassStatus joins one scheduled class on one calendar day against the
// feedback (if any) logged for that day. FeedbackID is null when no feedback
// exists.
type ClassStatus struct {
	StudentID       uint   `json:"student_id"`
	StudentName     string `json:"student_name"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	FeedbackWritten bool   `json:"feedback_written"`
	IsAbsent        bool   `json:"is_absent"`
	FeedbackID      *uint  `json:"feedback_id"`
}

// DayEntry is one calendar day with the classes scheduled on it. Days with
// no classes still appear with an empty Classes slice.
type DayEntry struct {
	Date    string        `json:"date"`
	Classes []ClassStatus `json:"classes"`
}

// CalendarResponse is the body of the calendar-status endpoint.
type CalendarResponse struct {
	Calendar []DayEntry `json:"calendar"`
}

package handler_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haewon-dev/tutorlog-api/internal/config"
	"github.com/haewon-dev/tutorlog-api/internal/dto"
	"github.com/haewon-dev/tutorlog-api/internal/handler"
	"github.com/haewon-dev/tutorlog-api/internal/models"
	"github.com/haewon-dev/tutorlog-api/internal/repository"
	"github.com/haewon-dev/tutorlog-api/internal/router"
	"github.com/haewon-dev/tutorlog-api/internal/service"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.Feedback{}, &models.ScheduledClass{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	studentRepo := repository.NewStudentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	studentService := service.NewStudentService(studentRepo, feedbackRepo, validate, nil, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, validate, nil, time.UTC, logger)
	scheduleService := service.NewScheduleService(scheduleRepo, validate, nil, logger)
	calendarService := service.NewCalendarService(scheduleRepo, feedbackRepo, studentRepo, nil, time.Minute, time.UTC, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", AppEnv: "test"}, router.Dependencies{
		StudentHandler:  handler.NewStudentHandler(studentService, scheduleService, logger),
		FeedbackHandler: handler.NewFeedbackHandler(feedbackService, logger),
		ScheduleHandler: handler.NewScheduleHandler(scheduleService, logger),
		CalendarHandler: handler.NewCalendarHandler(calendarService, logger),
	})

	return app, db
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

func seedWednesdayClass(t *testing.T, db *gorm.DB) models.Student {
	t.Helper()

	student := models.Student{Name: "Student A"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&models.ScheduledClass{
		StudentID: student.ID, DayOfWeek: 2, StartTime: "15:00", DurationMinutes: 60, IsActive: true,
	}).Error)

	return student
}

func TestCalendarStatusWeekRange(t *testing.T) {
	app, db := setupApp(t)
	student := seedWednesdayClass(t, db)

	req := httptest.NewRequest("GET", "/api/calendar/status?start_date=2025-03-17&end_date=2025-03-24", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.CalendarResponse
	decodeBody(t, resp, &body)
	require.Len(t, body.Calendar, 7)
	require.Equal(t, "2025-03-17", body.Calendar[0].Date)
	require.Equal(t, "2025-03-23", body.Calendar[6].Date)

	wednesday := body.Calendar[2]
	require.Equal(t, "2025-03-19", wednesday.Date)
	require.Len(t, wednesday.Classes, 1)
	require.Equal(t, student.ID, wednesday.Classes[0].StudentID)
	require.Equal(t, "Student A", wednesday.Classes[0].StudentName)
	require.Equal(t, "15:00", wednesday.Classes[0].StartTime)
	require.Equal(t, 60, wednesday.Classes[0].DurationMinutes)
	require.False(t, wednesday.Classes[0].FeedbackWritten)
	require.Nil(t, wednesday.Classes[0].FeedbackID)
}

func TestCalendarStatusWireFieldNames(t *testing.T) {
	app, db := setupApp(t)
	seedWednesdayClass(t, db)

	req := httptest.NewRequest("GET", "/api/calendar/status?start_date=2025-03-19&end_date=2025-03-20", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var raw struct {
		Calendar []struct {
			Date    string `json:"date"`
			Classes []map[string]json.RawMessage `json:"classes"`
		} `json:"calendar"`
	}
	decodeBody(t, resp, &raw)
	require.Len(t, raw.Calendar, 1)
	require.Len(t, raw.Calendar[0].Classes, 1)

	class := raw.Calendar[0].Classes[0]
	for _, key := range []string{"student_id", "student_name", "start_time", "duration_minutes", "feedback_written", "is_absent", "feedback_id"} {
		require.Contains(t, class, key)
	}
	require.Equal(t, "null", string(class["feedback_id"]))
}

func TestCalendarStatusBadDatesFallBackToCurrentMonth(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/api/calendar/status?start_date=garbage&end_date=worse", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.CalendarResponse
	decodeBody(t, resp, &body)

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	expectedDays := int(monthStart.AddDate(0, 1, 0).Sub(monthStart).Hours() / 24)
	require.Len(t, body.Calendar, expectedDays)
	require.Equal(t, monthStart.Format("2006-01-02"), body.Calendar[0].Date)
}

func TestCalendarStatusMarkAbsentRoundTrip(t *testing.T) {
	app, db := setupApp(t)
	student := seedWednesdayClass(t, db)

	payload := fmt.Sprintf(`{"student_id": %d, "class_date": "2025-03-19"}`, student.ID)
	req := httptest.NewRequest("POST", "/api/feedback/mark-absent", newJSONBody(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	calReq := httptest.NewRequest("GET", "/api/calendar/status?start_date=2025-03-17&end_date=2025-03-24", nil)
	calResp, err := app.Test(calReq)
	require.NoError(t, err)

	var body dto.CalendarResponse
	decodeBody(t, calResp, &body)

	status := body.Calendar[2].Classes[0]
	require.True(t, status.FeedbackWritten)
	require.True(t, status.IsAbsent)
	require.NotNil(t, status.FeedbackID)
}

package handler_test

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/haewon-dev/tutorlog-api/internal/dto"
	"github.com/haewon-dev/tutorlog-api/internal/models"
)

func TestStudentCreateAndListEndpoints(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("POST", "/api/students", newJSONBody(`{"name": "Minji", "contact": "010-1234-5678"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.StudentResponse
	decodeBody(t, resp, &created)
	require.NotZero(t, created.ID)
	require.Equal(t, "Minji", created.Name)

	listReq := httptest.NewRequest("GET", "/api/students", nil)
	listResp, err := app.Test(listReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, listResp.StatusCode)

	var list dto.StudentListResponse
	decodeBody(t, listResp, &list)
	require.Len(t, list.Students, 1)
}

func TestStudentCreateEndpointRequiresName(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("POST", "/api/students", newJSONBody(`{"contact": "010-1234-5678"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStudentDetailEndpoint(t *testing.T) {
	app, db := setupApp(t)

	student := models.Student{Name: "Jiho"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&models.Feedback{
		StudentID: student.ID,
		ClassDate: time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC),
	}).Error)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/students/%d", student.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail dto.StudentDetailResponse
	decodeBody(t, resp, &detail)
	require.Equal(t, "Jiho", detail.Student.Name)
	require.Len(t, detail.Feedbacks, 1)
}

func TestStudentDetailEndpointNotFound(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/api/students/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStudentNotesEndpoint(t *testing.T) {
	app, db := setupApp(t)

	student := models.Student{Name: "Minji"}
	require.NoError(t, db.Create(&student).Error)

	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/students/%d/notes", student.ID), newJSONBody(`{"notes": "Prefers evening slots"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Student
	require.NoError(t, db.First(&stored, student.ID).Error)
	require.Equal(t, "Prefers evening slots", stored.Notes)
}

func TestStudentDeleteEndpointCascades(t *testing.T) {
	app, db := setupApp(t)

	student := models.Student{Name: "Minji"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&models.Feedback{StudentID: student.ID, ClassDate: time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)}).Error)
	require.NoError(t, db.Create(&models.ScheduledClass{StudentID: student.ID, DayOfWeek: 2, StartTime: "15:00", DurationMinutes: 60, IsActive: true}).Error)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/students/%d", student.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var feedbackCount, scheduleCount int64
	require.NoError(t, db.Model(&models.Feedback{}).Where("student_id = ?", student.ID).Count(&feedbackCount).Error)
	require.NoError(t, db.Model(&models.ScheduledClass{}).Where("student_id = ?", student.ID).Count(&scheduleCount).Error)
	require.Zero(t, feedbackCount)
	require.Zero(t, scheduleCount)
}

func TestStudentScheduleListEndpoint(t *testing.T) {
	app, db := setupApp(t)

	student := models.Student{Name: "Minji"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&models.ScheduledClass{StudentID: student.ID, DayOfWeek: 2, StartTime: "15:00", DurationMinutes: 60, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.ScheduledClass{StudentID: student.ID, DayOfWeek: 4, StartTime: "17:00", DurationMinutes: 60, IsActive: false}).Error)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/students/%d/scheduled-classes", student.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.ScheduleListResponse
	decodeBody(t, resp, &body)
	require.Len(t, body.ScheduledClasses, 1)
	require.Equal(t, "15:00", body.ScheduledClasses[0].StartTime)
}

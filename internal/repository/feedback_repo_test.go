package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haewon-dev/tutorlog-api/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.Feedback{}, &models.ScheduledClass{}))

	return db
}

func TestFindByStudentAndDayMatchesDayWindow(t *testing.T) {
	db := testDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	student := models.Student{Name: "Minji"}
	require.NoError(t, db.Create(&student).Error)

	inside := models.Feedback{StudentID: student.ID, ClassDate: time.Date(2025, 3, 19, 23, 0, 0, 0, time.UTC)}
	dayBefore := models.Feedback{StudentID: student.ID, ClassDate: time.Date(2025, 3, 18, 23, 59, 0, 0, time.UTC)}
	dayAfter := models.Feedback{StudentID: student.ID, ClassDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(&inside).Error)
	require.NoError(t, db.Create(&dayBefore).Error)
	require.NoError(t, db.Create(&dayAfter).Error)

	dayStart := time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)
	found, err := repo.FindByStudentAndDay(ctx, student.ID, dayStart, dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, inside.ID, found.ID)
}

func TestFindByStudentAndDayLowestIDWins(t *testing.T) {
	db := testDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	student := models.Student{Name: "Minji"}
	require.NoError(t, db.Create(&student).Error)

	// Duplicate rows for the same day are permitted via plain creation; the
	// lookup must keep picking the same one.
	first := models.Feedback{StudentID: student.ID, ClassDate: time.Date(2025, 3, 19, 18, 0, 0, 0, time.UTC)}
	second := models.Feedback{StudentID: student.ID, ClassDate: time.Date(2025, 3, 19, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	dayStart := time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		found, err := repo.FindByStudentAndDay(ctx, student.ID, dayStart, dayStart.AddDate(0, 0, 1))
		require.NoError(t, err)
		require.Equal(t, first.ID, found.ID)
	}
}

func TestFindByStudentAndDayScopedToStudent(t *testing.T) {
	db := testDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	minji := models.Student{Name: "Minji"}
	jiho := models.Student{Name: "Jiho"}
	require.NoError(t, db.Create(&minji).Error)
	require.NoError(t, db.Create(&jiho).Error)

	require.NoError(t, db.Create(&models.Feedback{
		StudentID: jiho.ID,
		ClassDate: time.Date(2025, 3, 19, 15, 0, 0, 0, time.UTC),
	}).Error)

	dayStart := time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)
	_, err := repo.FindByStudentAndDay(ctx, minji.ID, dayStart, dayStart.AddDate(0, 0, 1))
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListByStudentOrdersByClassDateDesc(t *testing.T) {
	db := testDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	student := models.Student{Name: "Minji"}
	require.NoError(t, db.Create(&student).Error)

	older := models.Feedback{StudentID: student.ID, ClassDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)}
	newer := models.Feedback{StudentID: student.ID, ClassDate: time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	rows, err := repo.ListByStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, newer.ID, rows[0].ID)
}

func TestScheduleListActiveByWeekdayFiltersInactive(t *testing.T) {
	db := testDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	student := models.Student{Name: "Minji"}
	require.NoError(t, db.Create(&student).Error)

	require.NoError(t, db.Create(&models.ScheduledClass{StudentID: student.ID, DayOfWeek: 2, StartTime: "15:00", DurationMinutes: 60, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.ScheduledClass{StudentID: student.ID, DayOfWeek: 2, StartTime: "17:00", DurationMinutes: 60, IsActive: false}).Error)
	require.NoError(t, db.Create(&models.ScheduledClass{StudentID: student.ID, DayOfWeek: 3, StartTime: "15:00", DurationMinutes: 60, IsActive: true}).Error)

	classes, err := repo.ListActiveByWeekday(ctx, 2)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	require.Equal(t, "15:00", classes[0].StartTime)
}

func TestStudentDeleteCascadeIsTransactional(t *testing.T) {
	db := testDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	student := models.Student{Name: "Minji"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&models.Feedback{StudentID: student.ID, ClassDate: time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)}).Error)

	require.NoError(t, repo.DeleteCascade(ctx, student.ID))

	require.ErrorIs(t, repo.DeleteCascade(ctx, student.ID), gorm.ErrRecordNotFound)
}

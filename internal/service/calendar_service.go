package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/haewon-dev/tutorlog-api/internal/dto"
	"github.com/haewon-dev/tutorlog-api/internal/repository"
	"github.com/haewon-dev/tutorlog-api/internal/timeutil"
)

const (
	dayLayout          = "2006-01-02"
	calendarVersionKey = "calendar:ver"
)

// CalendarInvalidator bumps the calendar cache generation. Every write that
// feeds the calendar (feedback, schedules, student deletion) calls
// Invalidate so stale cached views are never served. Both a nil receiver and
// a nil cache are tolerated; invalidation is best-effort.
type CalendarInvalidator struct {
	cache  *redis.Client
	logger zerolog.Logger
}

// NewCalendarInvalidator constructs the shared cache invalidator.
func NewCalendarInvalidator(cache *redis.Client, logger zerolog.Logger) *CalendarInvalidator {
	return &CalendarInvalidator{
		cache:  cache,
		logger: logger.With().Str("component", "calendar_invalidator").Logger(),
	}
}

// Invalidate advances the cache generation counter.
func (i *CalendarInvalidator) Invalidate(ctx context.Context) {
	if i == nil || i.cache == nil {
		return
	}

	if err := i.cache.Incr(ctx, calendarVersionKey).Err(); err != nil {
		i.logger.Warn().Err(err).Msg("failed to bump calendar cache version")
	}
}

// CalendarService derives the day-by-day feedback status view from the
// weekly schedule and the feedback log.
type CalendarService interface {
	BuildCalendar(ctx context.Context, startRaw, endRaw string) (dto.CalendarResponse, error)
}

type calendarService struct {
	schedules repository.ScheduleRepository
	feedbacks repository.FeedbackRepository
	students  repository.StudentRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	loc       *time.Location
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCalendarService builds the calendar view service. cache may be nil, in
// which case every call rebuilds from the store.
func NewCalendarService(schedules repository.ScheduleRepository, feedbacks repository.FeedbackRepository, students repository.StudentRepository, cache *redis.Client, ttl time.Duration, loc *time.Location, logger zerolog.Logger) CalendarService {
	return &calendarService{
		schedules: schedules,
		feedbacks: feedbacks,
		students:  students,
		cache:     cache,
		cacheTTL:  ttl,
		loc:       loc,
		logger:    logger.With().Str("component", "calendar_service").Logger(),
		now:       time.Now,
	}
}

// BuildCalendar produces one entry per calendar day over the half-open
// [start, end) range, joining each day's scheduled classes against the
// feedback logged for that day. Missing or unparsable range inputs silently
// fall back to the current calendar month; callers cannot distinguish the
// fallback from an explicit full-month request.
func (s *calendarService) BuildCalendar(ctx context.Context, startRaw, endRaw string) (dto.CalendarResponse, error) {
	start, end := s.resolveRange(startRaw, endRaw)

	cacheKey := s.cacheKey(ctx, start, end)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.CalendarResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Str("key", cacheKey).Msg("calendar cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read calendar cache")
		}
	}

	days := make([]dto.DayEntry, 0, int(end.Sub(start).Hours()/24))
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		entry, err := s.buildDay(ctx, day)
		if err != nil {
			return dto.CalendarResponse{}, err
		}
		days = append(days, entry)
	}

	response := dto.CalendarResponse{Calendar: days}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store calendar cache")
			}
		}
	}

	return response, nil
}

// resolveRange parses both endpoints and truncates them to midnight so a
// datetime input still yields whole calendar days. If either input fails to
// parse the whole range falls back to the current month, first-of-month
// through first-of-next-month; AddDate rolls December into January.
func (s *calendarService) resolveRange(startRaw, endRaw string) (time.Time, time.Time) {
	start, startErr := timeutil.ParseFlexible(startRaw, s.loc)
	end, endErr := timeutil.ParseFlexible(endRaw, s.loc)
	if startErr != nil || endErr != nil {
		return timeutil.MonthRange(s.now(), s.loc)
	}

	return timeutil.StartOfDay(start, s.loc), timeutil.StartOfDay(end, s.loc)
}

// buildDay joins one day against the schedule index and the feedback log.
// Classes keep the index's natural order; callers wanting start-time order
// sort on their side.
func (s *calendarService) buildDay(ctx context.Context, day time.Time) (dto.DayEntry, error) {
	entry := dto.DayEntry{
		Date:    day.Format(dayLayout),
		Classes: []dto.ClassStatus{},
	}

	classes, err := s.schedules.ListActiveByWeekday(ctx, timeutil.WeekdayIndex(day))
	if err != nil {
		return dto.DayEntry{}, err
	}

	dayEnd := day.AddDate(0, 0, 1)

	for _, class := range classes {
		// A schedule pointing at a missing student is a data-integrity
		// violation, not a per-class condition; the whole build fails.
		student, err := s.students.GetByID(ctx, class.StudentID)
		if err != nil {
			return dto.DayEntry{}, fmt.Errorf("resolve student %d for schedule %d: %w", class.StudentID, class.ID, err)
		}

		status := dto.ClassStatus{
			StudentID:       class.StudentID,
			StudentName:     student.Name,
			StartTime:       class.StartTime,
			DurationMinutes: class.DurationMinutes,
		}

		feedback, err := s.feedbacks.FindByStudentAndDay(ctx, class.StudentID, day, dayEnd)
		switch {
		case err == nil:
			status.FeedbackWritten = true
			status.IsAbsent = feedback.IsAbsent
			id := feedback.ID
			status.FeedbackID = &id
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No feedback yet; zero values already say so.
		default:
			return dto.DayEntry{}, err
		}

		entry.Classes = append(entry.Classes, status)
	}

	return entry, nil
}

func (s *calendarService) cacheKey(ctx context.Context, start, end time.Time) string {
	version := "0"
	if s.cache != nil {
		if v, err := s.cache.Get(ctx, calendarVersionKey).Result(); err == nil {
			version = v
		}
	}

	return fmt.Sprintf("calendar:%s:%s:%s", version, start.Format(dayLayout), end.Format(dayLayout))
}

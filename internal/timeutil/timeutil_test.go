package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseFlexibleAcceptedFormats(t *testing.T) {
	loc := time.UTC

	cases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date only", "2025-03-19", time.Date(2025, 3, 19, 0, 0, 0, 0, loc)},
		{"datetime with z", "2025-03-19T15:00:00Z", time.Date(2025, 3, 19, 15, 0, 0, 0, loc)},
		{"datetime with offset", "2025-03-19T15:00:00+00:00", time.Date(2025, 3, 19, 15, 0, 0, 0, loc)},
		{"datetime without offset", "2025-03-19T15:00:00", time.Date(2025, 3, 19, 15, 0, 0, 0, loc)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFlexible(tc.input, loc)
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got), "want %v, got %v", tc.want, got)
		})
	}
}

func TestParseFlexibleRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "19/03/2025", "2025-13-01"} {
		_, err := ParseFlexible(input, time.UTC)
		require.Error(t, err, "input %q", input)
	}
}

func TestMonthRange(t *testing.T) {
	loc := time.UTC

	start, end := MonthRange(time.Date(2025, 3, 17, 10, 30, 0, 0, loc), loc)
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, loc), start)
	require.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, loc), end)
}

func TestMonthRangeDecemberRollsToJanuary(t *testing.T) {
	loc := time.UTC

	start, end := MonthRange(time.Date(2025, 12, 15, 0, 0, 0, 0, loc), loc)
	require.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, loc), start)
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, loc), end)
}

func TestStartOfDay(t *testing.T) {
	loc := time.UTC

	got := StartOfDay(time.Date(2025, 3, 19, 23, 59, 59, 0, loc), loc)
	require.Equal(t, time.Date(2025, 3, 19, 0, 0, 0, 0, loc), got)
}

func TestWeekdayIndexMondayBased(t *testing.T) {
	// 2025-03-17 is a Monday.
	for offset := 0; offset < 7; offset++ {
		day := time.Date(2025, 3, 17+offset, 0, 0, 0, 0, time.UTC)
		require.Equal(t, offset, WeekdayIndex(day), "day %v", day)
	}
}

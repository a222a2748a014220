package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinoo-dez/gym-api/internal/analytics"
)

func TestDayKeySameUTCDay(t *testing.T) {
	early := time.Date(2026, 8, 29, 0, 0, 1, 0, time.UTC)
	late := time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-08-29", analytics.DayKey(early))
	assert.Equal(t, analytics.DayKey(early), analytics.DayKey(late))
	assert.NotEqual(t, analytics.DayKey(late), analytics.DayKey(nextDay))
}

func TestDayKeyNormalizesZone(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*3600)
	// 02:30 on the 30th in UTC+5 is still the 29th in UTC.
	local := time.Date(2026, 8, 30, 2, 30, 0, 0, zone)
	assert.Equal(t, "2026-08-29", analytics.DayKey(local))
}

func TestDailySeriesDense(t *testing.T) {
	start := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 10, 4, 0, 0, 0, time.UTC)
	values := map[string]float64{
		"2026-08-01": 100.505,
		"2026-08-05": 42,
	}

	series := analytics.DailySeries(start, end, func(day string) float64 { return values[day] })

	require.Len(t, series, 10)
	assert.Equal(t, "2026-08-01", series[0].Label)
	assert.Equal(t, "2026-08-10", series[9].Label)
	assert.Equal(t, 100.51, series[0].Value) // rounded at construction
	assert.Equal(t, 42.0, series[4].Value)
	assert.Equal(t, 0.0, series[1].Value) // no gap, zero filled
}

func TestDailySeriesLength(t *testing.T) {
	cases := []struct {
		days int
	}{
		{1}, {7}, {30}, {90},
	}
	end := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	for _, tc := range cases {
		start := end.AddDate(0, 0, -(tc.days - 1))
		series := analytics.DailySeries(start, end, func(string) float64 { return 0 })
		assert.Len(t, series, tc.days)
	}
}

func TestDailySeriesEmptyWhenStartAfterEnd(t *testing.T) {
	start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 9, 23, 0, 0, 0, time.UTC)
	series := analytics.DailySeries(start, end, func(string) float64 { return 1 })
	assert.Empty(t, series)

	// Raw instants decide, not the day buckets they fall into.
	sameDayStart := time.Date(2026, 8, 10, 23, 0, 0, 0, time.UTC)
	sameDayEnd := time.Date(2026, 8, 10, 1, 0, 0, 0, time.UTC)
	assert.Empty(t, analytics.DailySeries(sameDayStart, sameDayEnd, func(string) float64 { return 1 }))
}

func TestWeeklyRollupMondayAnchored(t *testing.T) {
	// 2026-08-23 is a Sunday; its week starts Monday 2026-08-17.
	daily := []analytics.Point{
		{Label: "2026-08-17", Value: 1}, // Monday
		{Label: "2026-08-23", Value: 2}, // Sunday, same week
		{Label: "2026-08-24", Value: 4}, // next Monday
	}

	weekly := analytics.WeeklyRollup(daily)

	require.Len(t, weekly, 2)
	assert.Equal(t, analytics.Point{Label: "2026-08-17", Value: 3}, weekly[0])
	assert.Equal(t, analytics.Point{Label: "2026-08-24", Value: 4}, weekly[1])
}

func TestWeeklyRollupConservesTotal(t *testing.T) {
	start := time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	daily := analytics.DailySeries(start, end, func(day string) float64 {
		return float64(len(day)) * 13.37 // arbitrary nonzero values
	})

	weekly := analytics.WeeklyRollup(daily)

	var dailySum, weeklySum float64
	for _, p := range daily {
		dailySum += p.Value
	}
	for _, p := range weekly {
		weeklySum += p.Value
	}
	assert.InDelta(t, dailySum, weeklySum, 0.01)

	for i := 1; i < len(weekly); i++ {
		assert.Less(t, weekly[i-1].Label, weekly[i].Label)
	}
}

func TestMonthlySeriesIteratesCalendarMonths(t *testing.T) {
	start := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	var bounds [][2]time.Time
	series := analytics.MonthlySeries(start, end, func(key string, mStart, mEnd time.Time) analytics.Point {
		bounds = append(bounds, [2]time.Time{mStart, mEnd})
		return analytics.Point{Label: key, Value: 1}
	})

	require.Len(t, series, 3)
	assert.Equal(t, "2026-01", series[0].Label)
	assert.Equal(t, "2026-02", series[1].Label)
	assert.Equal(t, "2026-03", series[2].Label)

	// Resolver sees [monthStart, nextMonthStart) bounds.
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), bounds[0][0])
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), bounds[0][1])
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), bounds[2][0])
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), bounds[2][1])
}

func TestHourLabel(t *testing.T) {
	assert.Equal(t, "00:00", analytics.HourLabel(0))
	assert.Equal(t, "09:00", analytics.HourLabel(9))
	assert.Equal(t, "23:00", analytics.HourLabel(23))
}

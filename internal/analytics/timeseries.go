package analytics

import (
	"fmt"
	"sort"
	"time"
)

// Point is one labeled value in a report series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DayKey maps an instant to its UTC calendar-day bucket. Two instants get
// the same key iff they fall on the same UTC day, so it doubles as the join
// key between independently pulled daily maps.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthKey maps an instant to its UTC calendar-month bucket.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// HourLabel formats an hour-of-day slot as "HH:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

func dayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DailySeries builds a dense day series from start through end inclusive,
// one point per UTC calendar day, no gaps. Values are rounded to 2 decimals
// at construction time; downstream roll-ups sum the rounded values.
// start after end yields an empty series.
func DailySeries(start, end time.Time, value func(dayKey string) float64) []Point {
	pts := []Point{}
	if start.After(end) {
		return pts
	}
	last := dayStart(end)
	for d := dayStart(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		key := DayKey(d)
		pts = append(pts, Point{Label: key, Value: Round2(value(key))})
	}
	return pts
}

// WeeklyRollup compresses a dense daily series into Monday-anchored weeks.
// Each day is assigned to the nearest Monday on or before it (a Sunday
// belongs to the week that started six days earlier), values summed per
// week and emitted in ascending label order. The sum over the output equals
// the sum over the input.
func WeeklyRollup(daily []Point) []Point {
	sums := map[string]float64{}
	for _, p := range daily {
		day, err := time.ParseInLocation("2006-01-02", p.Label, time.UTC)
		if err != nil {
			continue
		}
		back := (int(day.Weekday()) + 6) % 7
		week := DayKey(day.AddDate(0, 0, -back))
		sums[week] += p.Value
	}
	labels := make([]string, 0, len(sums))
	for l := range sums {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	pts := make([]Point, 0, len(labels))
	for _, l := range labels {
		pts = append(pts, Point{Label: l, Value: Round2(sums[l])})
	}
	return pts
}

// MonthlySeries iterates calendar months from start's month through end's
// month inclusive and calls resolve once per month with the month key and
// the [monthStart, monthEnd) bounds. The resolver re-derives each value
// from raw records, so monthly figures never compound the daily rounding.
func MonthlySeries(start, end time.Time, resolve func(monthKey string, monthStart, monthEnd time.Time) Point) []Point {
	pts := []Point{}
	last := monthStart(end)
	for m := monthStart(start); !m.After(last); m = m.AddDate(0, 1, 0) {
		pts = append(pts, resolve(MonthKey(m), m, m.AddDate(0, 1, 0)))
	}
	return pts
}

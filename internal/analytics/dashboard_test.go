package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinoo-dez/gym-api/internal/analytics"
)

func TestDashboardTotalsAndDeltas(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	snap := &analytics.Snapshot{
		Members: []analytics.Member{
			{ID: "m1", CreatedAt: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)},
			{ID: "m2", CreatedAt: time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC)},
			{ID: "m3", CreatedAt: time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC)},
			{ID: "m4", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
		Payments: []analytics.Payment{
			{Amount: 300, Status: analytics.PaymentPaid, CreatedAt: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
			{Amount: 100, Status: analytics.PaymentPaid, CreatedAt: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)},
			{Amount: 999, Status: analytics.PaymentPending, CreatedAt: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
		},
		Attendance: []analytics.Attendance{
			{MemberID: "m1", CheckInTime: time.Date(2026, 8, 29, 7, 0, 0, 0, time.UTC)},
			{MemberID: "m2", CheckInTime: time.Date(2026, 8, 15, 7, 0, 0, 0, time.UTC)},
			{MemberID: "m2", CheckInTime: time.Date(2026, 7, 15, 7, 0, 0, 0, time.UTC)},
			{MemberID: "m3", CheckInTime: time.Date(2026, 7, 16, 7, 0, 0, 0, time.UTC)},
			{MemberID: "m4", CheckInTime: time.Date(2026, 7, 17, 7, 0, 0, 0, time.UTC)},
		},
	}

	dash := analytics.BuildDashboard(now, snap)

	assert.Equal(t, 4, dash.Totals.TotalMembers)
	assert.Equal(t, 2, dash.Totals.ActiveMembers)
	assert.Equal(t, 300.0, dash.Totals.MonthRevenue)
	assert.Equal(t, 1, dash.Totals.CheckInsToday)

	require.Len(t, dash.MonthOverMonth, 3)
	byMetric := map[string]analytics.MetricDelta{}
	for _, d := range dash.MonthOverMonth {
		byMetric[d.Metric] = d
	}

	revenue := byMetric["revenue"]
	assert.Equal(t, 300.0, revenue.Current)
	assert.Equal(t, 100.0, revenue.Previous)
	assert.Equal(t, 200.0, revenue.Delta)
	assert.Equal(t, analytics.TrendIncrease, revenue.Trend)

	newMembers := byMetric["newMembers"]
	assert.Equal(t, 1.0, newMembers.Current)
	assert.Equal(t, 2.0, newMembers.Previous)
	assert.Equal(t, -1.0, newMembers.Delta)
	assert.Equal(t, analytics.TrendDecrease, newMembers.Trend)

	checkIns := byMetric["checkIns"]
	assert.Equal(t, 2.0, checkIns.Current)
	assert.Equal(t, 3.0, checkIns.Previous)
	assert.Equal(t, analytics.TrendDecrease, checkIns.Trend)
}

func TestDashboardEmptySnapshot(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	dash := analytics.BuildDashboard(now, &analytics.Snapshot{})

	assert.Equal(t, 0, dash.Totals.TotalMembers)
	assert.Equal(t, 0.0, dash.Totals.MonthRevenue)
	require.Len(t, dash.MonthOverMonth, 3)
	for _, d := range dash.MonthOverMonth {
		assert.Equal(t, 0.0, d.Delta)
		assert.Equal(t, analytics.TrendIncrease, d.Trend) // flat reads as increase
	}
}

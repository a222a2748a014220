package analytics

import "time"

// Dashboard is the lightweight companion to the full report: current
// totals plus calendar month-over-month movement.
type Dashboard struct {
	GeneratedAt    time.Time       `json:"generatedAt"`
	Totals         DashboardTotals `json:"totals"`
	MonthOverMonth []MetricDelta   `json:"monthOverMonth"`
}

type DashboardTotals struct {
	TotalMembers  int     `json:"totalMembers"`
	ActiveMembers int     `json:"activeMembers"`
	MonthRevenue  float64 `json:"monthRevenue"`
	CheckInsToday int     `json:"checkInsToday"`
}

// MetricDelta is current calendar month minus the previous one, tagged by
// the sign of the delta. A flat month has no sign of its own and is tagged
// as an increase.
type MetricDelta struct {
	Metric   string  `json:"metric"`
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Delta    float64 `json:"delta"`
	Trend    string  `json:"trend"`
}

const (
	TrendIncrease = "increase"
	TrendDecrease = "decrease"
)

// BuildDashboard computes the summary from the same snapshot the full
// report uses, so both views agree on every shared figure.
func BuildDashboard(now time.Time, snap *Snapshot) *Dashboard {
	now = now.UTC()
	w := snap.Windows.orDefault()
	curStart := monthStart(now)
	prevStart := curStart.AddDate(0, -1, 0)
	today := dayStart(now)

	inCur := func(t time.Time) bool { return !t.Before(curStart) && !t.After(now) }
	inPrev := func(t time.Time) bool { return !t.Before(prevStart) && t.Before(curStart) }

	curRevenue := membershipRevenueBy(snap.Payments, inCur) +
		productRevenueBy(snap.ProductSales, inCur) +
		sessionRevenueBy(snap.Sessions, inCur)
	prevRevenue := membershipRevenueBy(snap.Payments, inPrev) +
		productRevenueBy(snap.ProductSales, inPrev) +
		sessionRevenueBy(snap.Sessions, inPrev)

	var curMembers, prevMembers int
	for _, m := range snap.Members {
		switch {
		case inCur(m.CreatedAt):
			curMembers++
		case inPrev(m.CreatedAt):
			prevMembers++
		}
	}

	var curCheckIns, prevCheckIns, todayCheckIns int
	for _, a := range snap.Attendance {
		switch {
		case inCur(a.CheckInTime):
			curCheckIns++
			if !a.CheckInTime.Before(today) {
				todayCheckIns++
			}
		case inPrev(a.CheckInTime):
			prevCheckIns++
		}
	}

	return &Dashboard{
		GeneratedAt: now,
		Totals: DashboardTotals{
			TotalMembers:  len(snap.Members),
			ActiveMembers: distinctMembersSince(snap.Attendance, now.Add(-w.Active), now),
			MonthRevenue:  Round2(curRevenue),
			CheckInsToday: todayCheckIns,
		},
		MonthOverMonth: []MetricDelta{
			delta("revenue", Round2(curRevenue), Round2(prevRevenue)),
			delta("newMembers", float64(curMembers), float64(prevMembers)),
			delta("checkIns", float64(curCheckIns), float64(prevCheckIns)),
		},
	}
}

func delta(metric string, current, previous float64) MetricDelta {
	d := Round2(current - previous)
	trend := TrendIncrease
	if d < 0 {
		trend = TrendDecrease
	}
	return MetricDelta{Metric: metric, Current: current, Previous: previous, Delta: d, Trend: trend}
}

package analytics

import (
	"strings"
	"time"
)

// Report is the composite analytics payload the reporting view renders.
type Report struct {
	GeneratedAt        time.Time          `json:"generatedAt"`
	RevenueReports     RevenueReports     `json:"revenueReports"`
	MemberAnalytics    MemberAnalytics    `json:"memberAnalytics"`
	OperationalMetrics OperationalMetrics `json:"operationalMetrics"`
}

type RevenueReports struct {
	DailyRevenue        []Point             `json:"dailyRevenue"`
	WeeklyRevenue       []Point             `json:"weeklyRevenue"`
	MonthlyRevenue      []Point             `json:"monthlyRevenue"`
	RevenueBySource     RevenueBySource     `json:"revenueBySource"`
	PaymentCollection   PaymentCollection   `json:"paymentCollection"`
	OutstandingPayments OutstandingPayments `json:"outstandingPayments"`
}

type RevenueBySource struct {
	Memberships float64 `json:"memberships"`
	Products    float64 `json:"products"`
	Sessions    float64 `json:"sessions"`
}

type PaymentCollection struct {
	InvoicedAmount  float64 `json:"invoicedAmount"`
	CollectedAmount float64 `json:"collectedAmount"`
	CollectionRate  float64 `json:"collectionRate"`
}

type OutstandingPayments struct {
	InvoiceOutstanding float64 `json:"invoiceOutstanding"`
	PendingPayments    float64 `json:"pendingPayments"`
	TotalOutstanding   float64 `json:"totalOutstanding"`
}

type MemberAnalytics struct {
	GrowthTrends               []Point          `json:"growthTrends"`
	ChurnRate                  float64          `json:"churnRate"`
	ActiveVsInactive           ActiveVsInactive `json:"activeVsInactive"`
	Demographics               Demographics     `json:"demographics"`
	MembershipPlanDistribution []PlanCount      `json:"membershipPlanDistribution"`
}

type ActiveVsInactive struct {
	Active               int `json:"active"`
	Inactive             int `json:"inactive"`
	PreviousPeriodActive int `json:"previousPeriodActive"`
}

type Demographics struct {
	GenderDistribution map[string]int  `json:"genderDistribution"`
	AgeDistribution    AgeDistribution `json:"ageDistribution"`
}

// AgeDistribution has six fixed bands; the lower bound of each band is
// inclusive, so an 18th birthday today lands in 18-25.
type AgeDistribution struct {
	Under18   int `json:"under18"`
	Age18To25 int `json:"18-25"`
	Age26To35 int `json:"26-35"`
	Age36To45 int `json:"36-45"`
	Age46Plus int `json:"46+"`
	Unknown   int `json:"unknown"`
}

type PlanCount struct {
	PlanName string `json:"planName"`
	Count    int    `json:"count"`
}

type OperationalMetrics struct {
	PeakHoursAnalysis          []Point            `json:"peakHoursAnalysis"`
	ClassAttendanceTrends      []ClassAttendance  `json:"classAttendanceTrends"`
	TrainerUtilization         TrainerUtilization `json:"trainerUtilization"`
	EquipmentUsagePatterns     EquipmentUsage     `json:"equipmentUsagePatterns"`
	AverageMemberLifetimeValue float64            `json:"averageMemberLifetimeValue"`
}

type ClassAttendance struct {
	ClassName       string `json:"className"`
	AttendanceCount int    `json:"attendanceCount"`
}

type TrainerUtilization struct {
	TotalTrainers         int           `json:"totalTrainers"`
	EngagedTrainers       int           `json:"engagedTrainers"`
	UtilizationRate       float64       `json:"utilizationRate"`
	TopTrainersBySessions []TrainerRank `json:"topTrainersBySessions"`
}

type TrainerRank struct {
	TrainerName  string `json:"trainerName"`
	SessionCount int    `json:"sessionCount"`
}

type EquipmentUsage struct {
	UsageByClassCategory      []CategoryUsage `json:"usageByClassCategory"`
	ActiveEquipmentByCategory map[string]int  `json:"activeEquipmentByCategory"`
}

type CategoryUsage struct {
	Category     string `json:"category"`
	BookingCount int    `json:"bookingCount"`
}

const (
	dailySeriesDays = 30
	topClassCount   = 8
	topTrainerCount = 5
	unknownClass    = "Unknown Class"
	unknownTrainer  = "Unknown Trainer"
	unknownPlan     = "Unknown Plan"
	unknownGender   = "Unknown"
)

// BuildReport aggregates one snapshot into the full report. It is a pure
// function of (now, snap): every lookback window is anchored on the single
// now passed in, sized by the snapshot's Windows, and the snapshot is never
// mutated.
func BuildReport(now time.Time, snap *Snapshot) *Report {
	now = now.UTC()
	w := snap.Windows.orDefault()
	return &Report{
		GeneratedAt:        now,
		RevenueReports:     buildRevenue(now, w, snap),
		MemberAnalytics:    buildMemberAnalytics(now, w, snap),
		OperationalMetrics: buildOperations(now, w, snap),
	}
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// membershipRevenueBy sums PAID payment amounts matched by the interval
// predicate; the other two follow the same pattern for their own status
// and timestamp fields.
func membershipRevenueBy(payments []Payment, in func(time.Time) bool) float64 {
	var total float64
	for _, p := range payments {
		if p.Status == PaymentPaid && in(p.CreatedAt) {
			total += p.Amount
		}
	}
	return total
}

func productRevenueBy(sales []ProductSale, in func(time.Time) bool) float64 {
	var total float64
	for _, s := range sales {
		if s.Status == SaleCompleted && in(s.SoldAt) {
			total += s.Total
		}
	}
	return total
}

func sessionRevenueBy(sessions []TrainerSession, in func(time.Time) bool) float64 {
	var total float64
	for _, s := range sessions {
		if s.Status == SessionCompleted && in(s.SessionDate) {
			total += s.Rate
		}
	}
	return total
}

func buildRevenue(now time.Time, w Windows, snap *Snapshot) RevenueReports {
	dailyFrom := dayStart(now).AddDate(0, 0, -(dailySeriesDays - 1))
	opsFrom := now.Add(-w.Ops)
	trendFrom := monthStart(now).AddDate(0, -(w.TrendMonths - 1), 0)

	// Per-day maps for the three revenue categories, joined by day key.
	payDays := SumBy(snap.Payments, func(p Payment) (string, bool) {
		return DayKey(p.CreatedAt), p.Status == PaymentPaid && within(p.CreatedAt, dailyFrom, now)
	}, func(p Payment) float64 { return p.Amount })
	saleDays := SumBy(snap.ProductSales, func(s ProductSale) (string, bool) {
		return DayKey(s.SoldAt), s.Status == SaleCompleted && within(s.SoldAt, dailyFrom, now)
	}, func(s ProductSale) float64 { return s.Total })
	sessionDays := SumBy(snap.Sessions, func(s TrainerSession) (string, bool) {
		return DayKey(s.SessionDate), s.Status == SessionCompleted && within(s.SessionDate, dailyFrom, now)
	}, func(s TrainerSession) float64 { return s.Rate })

	daily := DailySeries(dailyFrom, now, func(day string) float64 {
		return payDays[day] + saleDays[day] + sessionDays[day]
	})

	in90 := func(t time.Time) bool { return within(t, opsFrom, now) }
	bySource := RevenueBySource{
		Memberships: Round2(membershipRevenueBy(snap.Payments, in90)),
		Products:    Round2(productRevenueBy(snap.ProductSales, in90)),
		Sessions:    Round2(sessionRevenueBy(snap.Sessions, in90)),
	}

	monthly := MonthlySeries(trendFrom, now, func(key string, mStart, mEnd time.Time) Point {
		inMonth := func(t time.Time) bool { return !t.Before(mStart) && t.Before(mEnd) }
		total := membershipRevenueBy(snap.Payments, inMonth) +
			productRevenueBy(snap.ProductSales, inMonth) +
			sessionRevenueBy(snap.Sessions, inMonth)
		return Point{Label: key, Value: Round2(total)}
	})

	var invoiced, collected, invoiceOutstanding float64
	for _, inv := range snap.Invoices {
		invoiced += inv.Total
		switch inv.Status {
		case InvoicePaid:
			collected += inv.Total
		case InvoiceSent, InvoiceOverdue:
			invoiceOutstanding += inv.Total
		}
	}

	var pending float64
	for _, p := range snap.Payments {
		if p.Status == PaymentPending && in90(p.CreatedAt) {
			pending += p.Amount
		}
	}

	return RevenueReports{
		DailyRevenue:    daily,
		WeeklyRevenue:   WeeklyRollup(daily),
		MonthlyRevenue:  monthly,
		RevenueBySource: bySource,
		PaymentCollection: PaymentCollection{
			InvoicedAmount:  Round2(invoiced),
			CollectedAmount: Round2(collected),
			CollectionRate:  Percentage(collected, invoiced),
		},
		OutstandingPayments: OutstandingPayments{
			InvoiceOutstanding: Round2(invoiceOutstanding),
			PendingPayments:    Round2(pending),
			TotalOutstanding:   Round2(invoiceOutstanding + pending),
		},
	}
}

func buildMemberAnalytics(now time.Time, w Windows, snap *Snapshot) MemberAnalytics {
	opsFrom := now.Add(-w.Ops)
	trendFrom := monthStart(now).AddDate(0, -(w.TrendMonths - 1), 0)

	// Growth buckets the full member set by creation month, not just the
	// operational window.
	growth := MonthlySeries(trendFrom, now, func(key string, mStart, mEnd time.Time) Point {
		var n int
		for _, m := range snap.Members {
			if !m.CreatedAt.Before(mStart) && m.CreatedAt.Before(mEnd) {
				n++
			}
		}
		return Point{Label: key, Value: float64(n)}
	})

	// Global churn ratio: ended in the window, over all subscriptions.
	var churned int
	for _, s := range snap.Subscriptions {
		if s.EndDate == nil || !within(*s.EndDate, opsFrom, now) {
			continue
		}
		if s.Status == SubscriptionCancelled || s.Status == SubscriptionExpired {
			churned++
		}
	}
	churnRate := Percentage(float64(churned), float64(len(snap.Subscriptions)))

	active := distinctMembersSince(snap.Attendance, now.Add(-w.Active), now)
	previous := distinctMembersSince(snap.Attendance, now.Add(-2*w.Active), now.Add(-w.Active))
	inactive := len(snap.Members) - active
	if inactive < 0 {
		inactive = 0
	}

	gender := CountBy(snap.Members, func(m Member) (string, bool) {
		g := strings.TrimSpace(m.Gender)
		if g == "" {
			g = unknownGender
		}
		return g, true
	})

	var ages AgeDistribution
	for _, m := range snap.Members {
		if m.DateOfBirth == nil {
			ages.Unknown++
			continue
		}
		switch age := wholeYears(*m.DateOfBirth, now); {
		case age < 18:
			ages.Under18++
		case age <= 25:
			ages.Age18To25++
		case age <= 35:
			ages.Age26To35++
		case age <= 45:
			ages.Age36To45++
		default:
			ages.Age46Plus++
		}
	}

	planCounts := CountBy(snap.Subscriptions, func(s Subscription) (string, bool) {
		if s.Status != SubscriptionActive {
			return "", false
		}
		if plan, ok := snap.Plans[s.PlanID]; ok {
			return plan.Name, true
		}
		return unknownPlan, true
	})
	plans := []PlanCount{}
	for _, r := range topCounts(planCounts, len(planCounts)) {
		plans = append(plans, PlanCount{PlanName: r.Key, Count: r.Count})
	}

	return MemberAnalytics{
		GrowthTrends: growth,
		ChurnRate:    churnRate,
		ActiveVsInactive: ActiveVsInactive{
			Active:               active,
			Inactive:             inactive,
			PreviousPeriodActive: previous,
		},
		Demographics: Demographics{
			GenderDistribution: gender,
			AgeDistribution:    ages,
		},
		MembershipPlanDistribution: plans,
	}
}

func buildOperations(now time.Time, w Windows, snap *Snapshot) OperationalMetrics {
	opsFrom := now.Add(-w.Ops)

	classByID := map[string]Class{}
	for _, c := range snap.Classes {
		classByID[c.ID] = c
	}
	trainerByID := map[string]Trainer{}
	for _, t := range snap.Trainers {
		trainerByID[t.ID] = t
	}

	hourCounts := CountBy(snap.Attendance, func(a Attendance) (int, bool) {
		return a.CheckInTime.UTC().Hour(), within(a.CheckInTime, opsFrom, now)
	})
	peak := make([]Point, 0, 24)
	for h := 0; h < 24; h++ {
		peak = append(peak, Point{Label: HourLabel(h), Value: float64(hourCounts[h])})
	}

	// Bookings whose schedule no longer resolves are skipped, never fatal.
	classCounts := CountBy(snap.Bookings, func(b ClassBooking) (string, bool) {
		if !qualifies(b.Status) {
			return "", false
		}
		sched, ok := snap.Schedules[b.ClassScheduleID]
		if !ok {
			return "", false
		}
		if class, ok := classByID[sched.ClassID]; ok {
			return class.Name, true
		}
		return unknownClass, true
	})
	classTrends := []ClassAttendance{}
	for _, r := range topCounts(classCounts, topClassCount) {
		classTrends = append(classTrends, ClassAttendance{ClassName: r.Key, AttendanceCount: r.Count})
	}

	sessionCounts := CountBy(snap.Sessions, func(s TrainerSession) (string, bool) {
		return s.TrainerID, s.TrainerID != "" &&
			within(s.SessionDate, opsFrom, now) &&
			(s.Status == SessionCompleted || s.Status == SessionScheduled)
	})
	bookingTrainerCounts := CountBy(snap.Bookings, func(b ClassBooking) (string, bool) {
		if !qualifies(b.Status) {
			return "", false
		}
		sched, ok := snap.Schedules[b.ClassScheduleID]
		if !ok || sched.TrainerID == "" {
			return "", false
		}
		return sched.TrainerID, true
	})

	combined := map[string]int{}
	for id, n := range sessionCounts {
		combined[id] += n
	}
	for id, n := range bookingTrainerCounts {
		combined[id] += n
	}
	topTrainers := []TrainerRank{}
	for _, r := range topCounts(combined, topTrainerCount) {
		name := unknownTrainer
		if t, ok := trainerByID[r.Key]; ok && t.Name != "" {
			name = t.Name
		}
		topTrainers = append(topTrainers, TrainerRank{TrainerName: name, SessionCount: r.Count})
	}

	// Class-category usage is a proxy from bookings; the inventory count is
	// a separate raw grouping of active equipment. The two never merge.
	usageCounts := CountBy(snap.Bookings, func(b ClassBooking) (string, bool) {
		if !qualifies(b.Status) {
			return "", false
		}
		sched, ok := snap.Schedules[b.ClassScheduleID]
		if !ok {
			return "", false
		}
		class, ok := classByID[sched.ClassID]
		if !ok {
			return "", false
		}
		return class.Category, true
	})
	usage := []CategoryUsage{}
	for _, r := range topCounts(usageCounts, len(usageCounts)) {
		usage = append(usage, CategoryUsage{Category: r.Key, BookingCount: r.Count})
	}
	inventory := CountBy(snap.Equipment, func(e Equipment) (string, bool) {
		return e.Category, e.IsActive
	})

	// Engaged trainers can reference deleted trainer records, so the rate
	// is clamped rather than allowed past 100.
	utilization := Percentage(float64(len(combined)), float64(len(snap.Trainers)))
	if utilization > 100 {
		utilization = 100
	}

	in90 := func(t time.Time) bool { return within(t, opsFrom, now) }
	revenue90 := membershipRevenueBy(snap.Payments, in90) +
		productRevenueBy(snap.ProductSales, in90) +
		sessionRevenueBy(snap.Sessions, in90)

	return OperationalMetrics{
		PeakHoursAnalysis:     peak,
		ClassAttendanceTrends: classTrends,
		TrainerUtilization: TrainerUtilization{
			TotalTrainers:         len(snap.Trainers),
			EngagedTrainers:       len(combined),
			UtilizationRate:       utilization,
			TopTrainersBySessions: topTrainers,
		},
		EquipmentUsagePatterns: EquipmentUsage{
			UsageByClassCategory:      usage,
			ActiveEquipmentByCategory: inventory,
		},
		AverageMemberLifetimeValue: Round2(SafeDiv(revenue90, float64(len(snap.Members)))),
	}
}

func qualifies(bookingStatus string) bool {
	return bookingStatus == BookingConfirmed || bookingStatus == BookingCompleted
}

func distinctMembersSince(attendance []Attendance, from, to time.Time) int {
	seen := map[string]struct{}{}
	for _, a := range attendance {
		if a.MemberID == "" {
			continue
		}
		if a.CheckInTime.After(from) && !a.CheckInTime.After(to) {
			seen[a.MemberID] = struct{}{}
		}
	}
	return len(seen)
}

// wholeYears is calendar age: one year less until the birthday has passed
// this year. An 18th birthday exactly today counts as 18.
func wholeYears(dob, now time.Time) int {
	dob, now = dob.UTC(), now.UTC()
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

package analytics_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinoo-dez/gym-api/internal/analytics"
)

// stubSource records the windows and ID sets it was queried with so tests
// can assert the fan-out and the dependent second round.
type stubSource struct {
	mu sync.Mutex

	paymentsErr error

	paymentsFrom   time.Time
	attendanceFrom time.Time
	scheduleIDs    []string
	planIDs        []string

	bookings      []analytics.ClassBooking
	subscriptions []analytics.Subscription
	schedules     map[string]analytics.ClassSchedule
	plans         map[string]analytics.MembershipPlan
}

func (s *stubSource) Payments(ctx context.Context, from, to time.Time) ([]analytics.Payment, error) {
	s.mu.Lock()
	s.paymentsFrom = from
	s.mu.Unlock()
	if s.paymentsErr != nil {
		return nil, s.paymentsErr
	}
	return []analytics.Payment{}, nil
}

func (s *stubSource) ProductSales(ctx context.Context, from, to time.Time) ([]analytics.ProductSale, error) {
	return []analytics.ProductSale{}, nil
}

func (s *stubSource) TrainerSessions(ctx context.Context, from, to time.Time) ([]analytics.TrainerSession, error) {
	return []analytics.TrainerSession{}, nil
}

func (s *stubSource) Members(ctx context.Context) ([]analytics.Member, error) {
	return []analytics.Member{}, nil
}

func (s *stubSource) Subscriptions(ctx context.Context) ([]analytics.Subscription, error) {
	return s.subscriptions, nil
}

func (s *stubSource) Attendance(ctx context.Context, from, to time.Time) ([]analytics.Attendance, error) {
	s.mu.Lock()
	s.attendanceFrom = from
	s.mu.Unlock()
	return []analytics.Attendance{}, nil
}

func (s *stubSource) ClassBookings(ctx context.Context, from, to time.Time) ([]analytics.ClassBooking, error) {
	return s.bookings, nil
}

func (s *stubSource) Classes(ctx context.Context) ([]analytics.Class, error) {
	return []analytics.Class{}, nil
}

func (s *stubSource) Trainers(ctx context.Context) ([]analytics.Trainer, error) {
	return []analytics.Trainer{}, nil
}

func (s *stubSource) Equipment(ctx context.Context) ([]analytics.Equipment, error) {
	return []analytics.Equipment{}, nil
}

func (s *stubSource) Invoices(ctx context.Context, from, to time.Time) ([]analytics.Invoice, error) {
	return []analytics.Invoice{}, nil
}

func (s *stubSource) ClassSchedules(ctx context.Context, ids []string) (map[string]analytics.ClassSchedule, error) {
	s.mu.Lock()
	s.scheduleIDs = ids
	s.mu.Unlock()
	return s.schedules, nil
}

func (s *stubSource) MembershipPlans(ctx context.Context, ids []string) (map[string]analytics.MembershipPlan, error) {
	s.mu.Lock()
	s.planIDs = ids
	s.mu.Unlock()
	return s.plans, nil
}

func TestLoadSnapshotResolvesDependentLookups(t *testing.T) {
	booked := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	src := &stubSource{
		bookings: []analytics.ClassBooking{
			{ClassScheduleID: "s1", Status: analytics.BookingConfirmed, BookedAt: booked},
			{ClassScheduleID: "s2", Status: analytics.BookingConfirmed, BookedAt: booked},
			{ClassScheduleID: "s1", Status: analytics.BookingCompleted, BookedAt: booked},
			{ClassScheduleID: "", Status: analytics.BookingConfirmed, BookedAt: booked},
		},
		subscriptions: []analytics.Subscription{
			{MemberID: "m1", PlanID: "p1", Status: analytics.SubscriptionActive},
		},
		schedules: map[string]analytics.ClassSchedule{"s1": {ID: "s1"}, "s2": {ID: "s2"}},
		plans:     map[string]analytics.MembershipPlan{"p1": {ID: "p1", Name: "Gold"}},
	}

	snap, err := analytics.LoadSnapshot(context.Background(), src, reportNow, analytics.Windows{})

	require.NoError(t, err)
	// Second round was keyed by the deduplicated, non-empty ID sets from
	// the first round.
	assert.ElementsMatch(t, []string{"s1", "s2"}, src.scheduleIDs)
	assert.Equal(t, []string{"p1"}, src.planIDs)
	assert.Equal(t, src.schedules, snap.Schedules)
	assert.Equal(t, src.plans, snap.Plans)
}

func TestLoadSnapshotPullsFullTrendWindow(t *testing.T) {
	src := &stubSource{}

	_, err := analytics.LoadSnapshot(context.Background(), src, reportNow, analytics.Windows{})

	require.NoError(t, err)
	// Revenue sources are pulled back to the first month of the 12-month
	// trend so the monthly series never misses records.
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), src.paymentsFrom)
}

func TestLoadSnapshotHonorsConfiguredWindows(t *testing.T) {
	src := &stubSource{}
	w := analytics.Windows{TrendMonths: 3, Ops: 10 * 24 * time.Hour}

	snap, err := analytics.LoadSnapshot(context.Background(), src, reportNow, w)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), src.paymentsFrom)
	assert.Equal(t, reportNow.Add(-10*24*time.Hour), src.attendanceFrom)
	// The unset activity window falls back to its stock value.
	assert.Equal(t, 30*24*time.Hour, snap.Windows.Active)
}

func TestLoadSnapshotFailsAtomically(t *testing.T) {
	src := &stubSource{paymentsErr: errors.New("payments table unavailable")}

	snap, err := analytics.LoadSnapshot(context.Background(), src, reportNow, analytics.Windows{})

	assert.Nil(t, snap)
	assert.EqualError(t, err, "payments table unavailable")
}

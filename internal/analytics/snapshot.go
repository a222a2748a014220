package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Windows are the lookback windows of one report build, all anchored on a
// single "now" taken at the top of the build. Zero fields fall back to the
// stock values, so a zero Windows behaves like DefaultWindows().
type Windows struct {
	TrendMonths int
	Ops         time.Duration
	Active      time.Duration
}

// DefaultWindows returns the stock 12-month trend, 90-day operational and
// 30-day activity windows.
func DefaultWindows() Windows {
	return Windows{
		TrendMonths: 12,
		Ops:         90 * 24 * time.Hour,
		Active:      30 * 24 * time.Hour,
	}
}

func (w Windows) orDefault() Windows {
	d := DefaultWindows()
	if w.TrendMonths <= 0 {
		w.TrendMonths = d.TrendMonths
	}
	if w.Ops <= 0 {
		w.Ops = d.Ops
	}
	if w.Active <= 0 {
		w.Active = d.Active
	}
	return w
}

// Source is the read-only query surface the engine pulls from. Every method
// returns fully materialized projections; an empty collection is an empty
// slice, not an error. Any outright query failure fails the whole snapshot,
// so a report is always built from one consistent pull.
type Source interface {
	Payments(ctx context.Context, from, to time.Time) ([]Payment, error)
	ProductSales(ctx context.Context, from, to time.Time) ([]ProductSale, error)
	TrainerSessions(ctx context.Context, from, to time.Time) ([]TrainerSession, error)
	Members(ctx context.Context) ([]Member, error)
	Subscriptions(ctx context.Context) ([]Subscription, error)
	Attendance(ctx context.Context, from, to time.Time) ([]Attendance, error)
	ClassBookings(ctx context.Context, from, to time.Time) ([]ClassBooking, error)
	Classes(ctx context.Context) ([]Class, error)
	Trainers(ctx context.Context) ([]Trainer, error)
	Equipment(ctx context.Context) ([]Equipment, error)
	Invoices(ctx context.Context, from, to time.Time) ([]Invoice, error)

	// Dependent lookups, resolved from the ID sets of the first round.
	ClassSchedules(ctx context.Context, ids []string) (map[string]ClassSchedule, error)
	MembershipPlans(ctx context.Context, ids []string) (map[string]MembershipPlan, error)
}

// Snapshot holds everything one report build reads. It is private to the
// build and discarded afterwards; nothing is shared across requests.
type Snapshot struct {
	Payments      []Payment
	ProductSales  []ProductSale
	Sessions      []TrainerSession
	Members       []Member
	Subscriptions []Subscription
	Attendance    []Attendance
	Bookings      []ClassBooking
	Classes       []Class
	Trainers      []Trainer
	Equipment     []Equipment
	Invoices      []Invoice

	Schedules map[string]ClassSchedule
	Plans     map[string]MembershipPlan

	// Windows records the lookback windows the snapshot was pulled at, so
	// the in-memory aggregation filters with the same bounds.
	Windows Windows
}

// LoadSnapshot issues the independent pulls concurrently and joins them
// before anything is aggregated. Revenue sources are pulled at the trend
// window, operational sources at the operational window; narrower windows
// are filtered in-memory during the build. A second round resolves plan and
// schedule lookups, which need the ID sets from the first.
func LoadSnapshot(ctx context.Context, src Source, now time.Time, w Windows) (*Snapshot, error) {
	w = w.orDefault()
	trendFrom := monthStart(now).AddDate(0, -(w.TrendMonths - 1), 0)
	opsFrom := now.Add(-w.Ops)

	snap := &Snapshot{Windows: w}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Payments, err = src.Payments(gctx, trendFrom, now)
		return err
	})
	g.Go(func() error {
		var err error
		snap.ProductSales, err = src.ProductSales(gctx, trendFrom, now)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Sessions, err = src.TrainerSessions(gctx, trendFrom, now)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Members, err = src.Members(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Subscriptions, err = src.Subscriptions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Attendance, err = src.Attendance(gctx, opsFrom, now)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Bookings, err = src.ClassBookings(gctx, opsFrom, now)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Classes, err = src.Classes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Trainers, err = src.Trainers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Equipment, err = src.Equipment(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Invoices, err = src.Invoices(gctx, opsFrom, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scheduleIDs := distinct(snap.Bookings, func(b ClassBooking) string { return b.ClassScheduleID })
	planIDs := distinct(snap.Subscriptions, func(s Subscription) string { return s.PlanID })

	g2, gctx2 := errgroup.WithContext(ctx)
	g2.Go(func() error {
		var err error
		snap.Schedules, err = src.ClassSchedules(gctx2, scheduleIDs)
		return err
	})
	g2.Go(func() error {
		var err error
		snap.Plans, err = src.MembershipPlans(gctx2, planIDs)
		return err
	})
	if err := g2.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func distinct[T any](items []T, id func(T) string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, it := range items {
		k := id(it)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

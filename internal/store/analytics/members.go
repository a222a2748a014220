package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/zinoo-dez/gym-api/internal/analytics"
)

func (r *Repository) Members(ctx context.Context) ([]analytics.Member, error) {
	query := `
		SELECT id::text, COALESCE(gender, ''), date_of_birth, created_at
		FROM members`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	members := []analytics.Member{}
	for rows.Next() {
		var m analytics.Member
		if err := rows.Scan(&m.ID, &m.Gender, &m.DateOfBirth, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *Repository) Subscriptions(ctx context.Context) ([]analytics.Subscription, error) {
	query := `
		SELECT COALESCE(member_id::text, ''), COALESCE(membership_plan_id::text, ''), status, start_date, end_date
		FROM subscriptions`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []analytics.Subscription{}
	for rows.Next() {
		var s analytics.Subscription
		if err := rows.Scan(&s.MemberID, &s.PlanID, &s.Status, &s.StartDate, &s.EndDate); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *Repository) Attendance(ctx context.Context, from, to time.Time) ([]analytics.Attendance, error) {
	query := `
		SELECT COALESCE(member_id::text, ''), COALESCE(type, ''), check_in_time
		FROM attendance
		WHERE check_in_time >= $1 AND check_in_time <= $2`

	rows, err := r.db.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()

	records := []analytics.Attendance{}
	for rows.Next() {
		var a analytics.Attendance
		if err := rows.Scan(&a.MemberID, &a.Type, &a.CheckInTime); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

func (r *Repository) MembershipPlans(ctx context.Context, ids []string) (map[string]analytics.MembershipPlan, error) {
	plans := map[string]analytics.MembershipPlan{}
	if len(ids) == 0 {
		return plans, nil
	}

	query := `
		SELECT id::text, name
		FROM membership_plans
		WHERE id::text = ANY($1)`

	rows, err := r.db.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query membership plans: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p analytics.MembershipPlan
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan membership plan: %w", err)
		}
		plans[p.ID] = p
	}
	return plans, rows.Err()
}

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/zinoo-dez/gym-api/internal/analytics"
)

func (r *Repository) ClassBookings(ctx context.Context, from, to time.Time) ([]analytics.ClassBooking, error) {
	query := `
		SELECT COALESCE(class_schedule_id::text, ''), status, booked_at
		FROM class_bookings
		WHERE booked_at >= $1 AND booked_at <= $2`

	rows, err := r.db.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query class bookings: %w", err)
	}
	defer rows.Close()

	bookings := []analytics.ClassBooking{}
	for rows.Next() {
		var b analytics.ClassBooking
		if err := rows.Scan(&b.ClassScheduleID, &b.Status, &b.BookedAt); err != nil {
			return nil, fmt.Errorf("scan class booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *Repository) Classes(ctx context.Context) ([]analytics.Class, error) {
	query := `
		SELECT id::text, name, COALESCE(category, ''), COALESCE(max_capacity, 0)
		FROM classes`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query classes: %w", err)
	}
	defer rows.Close()

	classes := []analytics.Class{}
	for rows.Next() {
		var c analytics.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.MaxCapacity); err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func (r *Repository) Trainers(ctx context.Context) ([]analytics.Trainer, error) {
	query := `
		SELECT id::text, COALESCE(name, '')
		FROM trainers`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query trainers: %w", err)
	}
	defer rows.Close()

	trainers := []analytics.Trainer{}
	for rows.Next() {
		var t analytics.Trainer
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan trainer: %w", err)
		}
		trainers = append(trainers, t)
	}
	return trainers, rows.Err()
}

func (r *Repository) Equipment(ctx context.Context) ([]analytics.Equipment, error) {
	query := `
		SELECT COALESCE(category, ''), is_active
		FROM equipment`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query equipment: %w", err)
	}
	defer rows.Close()

	equipment := []analytics.Equipment{}
	for rows.Next() {
		var e analytics.Equipment
		if err := rows.Scan(&e.Category, &e.IsActive); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		equipment = append(equipment, e)
	}
	return equipment, rows.Err()
}

func (r *Repository) ClassSchedules(ctx context.Context, ids []string) (map[string]analytics.ClassSchedule, error) {
	schedules := map[string]analytics.ClassSchedule{}
	if len(ids) == 0 {
		return schedules, nil
	}

	query := `
		SELECT id::text, COALESCE(class_id::text, ''), COALESCE(trainer_id::text, '')
		FROM class_schedules
		WHERE id::text = ANY($1)`

	rows, err := r.db.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query class schedules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s analytics.ClassSchedule
		if err := rows.Scan(&s.ID, &s.ClassID, &s.TrainerID); err != nil {
			return nil, fmt.Errorf("scan class schedule: %w", err)
		}
		schedules[s.ID] = s
	}
	return schedules, rows.Err()
}

package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zinoo-dez/gym-api/internal/analytics"
	"github.com/zinoo-dez/gym-api/internal/store"
)

// Repository implements analytics.Source over Postgres. Every query is a
// read-only projection of the fields the engine consumes; nothing here
// writes.
type Repository struct {
	db  *store.DB
	log *zap.Logger
}

func NewRepository(db *store.DB, log *zap.Logger) *Repository {
	return &Repository{db: db, log: log}
}

func (r *Repository) Payments(ctx context.Context, from, to time.Time) ([]analytics.Payment, error) {
	query := `
		SELECT COALESCE(amount, 0), status, created_at
		FROM payments
		WHERE created_at >= $1 AND created_at <= $2`

	rows, err := r.db.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	payments := []analytics.Payment{}
	for rows.Next() {
		var p analytics.Payment
		if err := rows.Scan(&p.Amount, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *Repository) ProductSales(ctx context.Context, from, to time.Time) ([]analytics.ProductSale, error) {
	query := `
		SELECT COALESCE(total, 0), status, sold_at
		FROM product_sales
		WHERE sold_at >= $1 AND sold_at <= $2`

	rows, err := r.db.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query product sales: %w", err)
	}
	defer rows.Close()

	sales := []analytics.ProductSale{}
	for rows.Next() {
		var s analytics.ProductSale
		if err := rows.Scan(&s.Total, &s.Status, &s.SoldAt); err != nil {
			return nil, fmt.Errorf("scan product sale: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *Repository) TrainerSessions(ctx context.Context, from, to time.Time) ([]analytics.TrainerSession, error) {
	query := `
		SELECT COALESCE(trainer_id::text, ''), COALESCE(rate, 0), COALESCE(duration, 0), status, session_date
		FROM trainer_sessions
		WHERE session_date >= $1 AND session_date <= $2`

	rows, err := r.db.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query trainer sessions: %w", err)
	}
	defer rows.Close()

	sessions := []analytics.TrainerSession{}
	for rows.Next() {
		var s analytics.TrainerSession
		if err := rows.Scan(&s.TrainerID, &s.Rate, &s.DurationMin, &s.Status, &s.SessionDate); err != nil {
			return nil, fmt.Errorf("scan trainer session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *Repository) Invoices(ctx context.Context, from, to time.Time) ([]analytics.Invoice, error) {
	query := `
		SELECT COALESCE(total, 0), status, due_date
		FROM invoices
		WHERE due_date >= $1 AND due_date <= $2`

	rows, err := r.db.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []analytics.Invoice{}
	for rows.Next() {
		var inv analytics.Invoice
		if err := rows.Scan(&inv.Total, &inv.Status, &inv.DueDate); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

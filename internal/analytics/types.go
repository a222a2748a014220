package analytics

import "time"

// Record statuses as stored by the business-side services. The engine only
// ever compares against these, it never writes them.
const (
	PaymentPaid    = "PAID"
	PaymentPending = "PENDING"

	SaleCompleted = "COMPLETED"

	SessionScheduled = "SCHEDULED"
	SessionCompleted = "COMPLETED"

	BookingConfirmed = "CONFIRMED"
	BookingCompleted = "COMPLETED"

	SubscriptionActive    = "ACTIVE"
	SubscriptionCancelled = "CANCELLED"
	SubscriptionExpired   = "EXPIRED"

	InvoicePaid    = "PAID"
	InvoiceSent    = "SENT"
	InvoiceOverdue = "OVERDUE"
)

// Payment is a membership payment projection.
type Payment struct {
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductSale is a point-of-sale transaction projection.
type ProductSale struct {
	Total  float64   `json:"total"`
	Status string    `json:"status"`
	SoldAt time.Time `json:"sold_at"`
}

// TrainerSession is a personal-training session projection.
type TrainerSession struct {
	TrainerID   string    `json:"trainer_id"`
	Rate        float64   `json:"rate"`
	DurationMin int       `json:"duration_min"`
	Status      string    `json:"status"`
	SessionDate time.Time `json:"session_date"`
}

// Member carries only the fields the aggregation reads. DateOfBirth is nil
// when the member never recorded one.
type Member struct {
	ID          string     `json:"id"`
	Gender      string     `json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Subscription links a member to a membership plan. EndDate is nil for
// open-ended subscriptions.
type Subscription struct {
	MemberID  string     `json:"member_id"`
	PlanID    string     `json:"plan_id"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// Attendance is a single gym check-in.
type Attendance struct {
	MemberID    string    `json:"member_id"`
	Type        string    `json:"type"`
	CheckInTime time.Time `json:"check_in_time"`
}

// ClassBooking references a class schedule slot. The schedule may have been
// deleted since; such bookings are skipped wherever the schedule is needed.
type ClassBooking struct {
	ClassScheduleID string    `json:"class_schedule_id"`
	Status          string    `json:"status"`
	BookedAt        time.Time `json:"booked_at"`
}

type Class struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	MaxCapacity int    `json:"max_capacity"`
}

type ClassSchedule struct {
	ID        string `json:"id"`
	ClassID   string `json:"class_id"`
	TrainerID string `json:"trainer_id"`
}

type Trainer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Equipment struct {
	Category string `json:"category"`
	IsActive bool   `json:"is_active"`
}

// Invoice is windowed by its due date.
type Invoice struct {
	Total   float64   `json:"total"`
	Status  string    `json:"status"`
	DueDate time.Time `json:"due_date"`
}

type MembershipPlan struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

package domain

import "time"

type BookingStatus string

const (
	BookingPending     BookingStatus = "pending"
	BookingAssigned    BookingStatus = "assigned"
	BookingInProgress  BookingStatus = "inProgress"
	BookingWaitPayment BookingStatus = "waitPayment"
	BookingCompleted   BookingStatus = "completed"
	BookingCancelled   BookingStatus = "cancelled"
)

// Booking is the aggregate root for a customer request. It owns its shifts
// exclusively: every shift carries this booking's id and is never shared.
type Booking struct {
	ID int64 `json:"id"`

	CustomerFullName string `json:"customer_full_name"`
	CustomerPhone    string `json:"customer_phone"`
	CustomerAddress  string `json:"customer_address"`
	// UsedPoint is the loyalty value granted for this booking:
	// floor(TotalCost / 100).
	UsedPoint int64 `json:"used_point"`

	// Snapshot of the chosen service at creation time. Coefficients are
	// frozen here so later catalog edits do not re-price existing bookings.
	ServiceTitle       string  `json:"service_title"`
	ServiceBasePrice   int64   `json:"service_base_price"`
	CoefficientService float64 `json:"coefficient_service"`
	CoefficientOther   float64 `json:"coefficient_other"`
	CoefficientOT      float64 `json:"coefficient_ot"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// TotalCost is the customer-facing price: the sum of the cost of all
	// non-cancelled shifts. Profit is TotalCost minus the helper pay of all
	// non-cancelled shifts, and stays 0 until the first assignment.
	TotalCost int64 `json:"total_cost"`
	Profit    int64 `json:"profit"`

	Status  BookingStatus `json:"status"`
	Deleted bool          `json:"deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

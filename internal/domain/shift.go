package domain

import "time"

type ShiftStatus string

const (
	ShiftPending     ShiftStatus = "pending"
	ShiftAssigned    ShiftStatus = "assigned"
	ShiftInProgress  ShiftStatus = "inProgress"
	ShiftCompleted   ShiftStatus = "completed"
	ShiftWaitPayment ShiftStatus = "waitPayment"
	ShiftCancelled   ShiftStatus = "cancelled"
)

// Shift is one schedulable day of work belonging to a booking.
// HelperID is nil while unassigned; HelperCost > 0 implies HelperID != nil.
// Cancelling a shift resets HelperID, HelperCost and Cost so cancelled
// shifts contribute nothing to the parent booking's totals.
type Shift struct {
	ID        int64 `json:"id"`
	BookingID int64 `json:"booking_id"`

	WorkingDate time.Time `json:"working_date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`

	HelperID   *int64 `json:"helper_id,omitempty"`
	Cost       int64  `json:"cost"`
	HelperCost int64  `json:"helper_cost"`

	Status ShiftStatus `json:"status"`

	// Comment holds post-completion notes: review text, lost or broken items.
	Comment string `json:"comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Assignable reports whether the shift can still take or lose a helper.
func (s *Shift) Assignable() bool {
	return s.Status == ShiftPending || s.Status == ShiftAssigned
}

package booking

import "homecare/internal/domain"

// CreateBookingRequest carries the admin "create request" form. Dates are
// "2006-01-02", times are minutes from midnight (same representation the
// settings store uses). When Details is supplied the booking is built from
// those entries instead of one shift per calendar day.
type CreateBookingRequest struct {
	ServiceID int64 `json:"service_id" binding:"required"`

	// Optional coefficient overrides; zero means "use the catalog value".
	CoefficientService float64 `json:"coefficient_service"`
	CoefficientOther   float64 `json:"coefficient_other"`
	CoefficientOT      float64 `json:"coefficient_ot"`

	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`

	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"`
	StartTime int    `json:"start_time"`
	EndTime   int    `json:"end_time"`

	Details []DetailCostEntry `json:"details"`
}

// DetailCostEntry is one admin-supplied per-day cost row.
type DetailCostEntry struct {
	WorkingDate string `json:"working_date" binding:"required"`
	StartTime   int    `json:"start_time"`
	EndTime     int    `json:"end_time"`
	Cost        int64  `json:"cost"`
}

// ShiftView is a shift enriched with the assigned helper's name for the
// admin detail screen.
type ShiftView struct {
	domain.Shift
	HelperName string `json:"helper_name,omitempty"`
}

type DetailResponse struct {
	Booking *domain.Booking `json:"booking"`
	Shifts  []ShiftView     `json:"shifts"`
	Helpers []HelperOption  `json:"helpers"`
}

// HelperOption is the assignable-helper dropdown entry.
type HelperOption struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

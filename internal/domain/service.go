package domain

import "time"

type ServiceStatus string

const (
	ServiceActive   ServiceStatus = "active"
	ServiceInactive ServiceStatus = "inactive"
)

// Service is a catalog entry. Its price and coefficients are snapshotted
// onto bookings at creation time.
type Service struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// BasicPrice is the customer-facing price per hour.
	BasicPrice int64 `json:"basic_price"`

	CoefficientService float64 `json:"coefficient_service"`
	CoefficientOther   float64 `json:"coefficient_other"`
	CoefficientOT      float64 `json:"coefficient_ot"`

	Status  ServiceStatus `json:"status"`
	Deleted bool          `json:"deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

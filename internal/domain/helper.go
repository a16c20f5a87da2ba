package domain

import "time"

type HelperStatus string

const (
	HelperActive   HelperStatus = "active"
	HelperInactive HelperStatus = "inactive"
)

type WorkingStatus string

const (
	WorkingOffline WorkingStatus = "offline"
	WorkingOnline  WorkingStatus = "online"
	WorkingBusy    WorkingStatus = "working"
)

type Helper struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`

	// BaseFactor is the helper's personal pay coefficient.
	BaseFactor float64 `json:"base_factor"`

	Status        HelperStatus  `json:"status"`
	WorkingStatus WorkingStatus `json:"working_status"`
	Deleted       bool          `json:"deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Available reports whether the helper can be claimed for a new shift.
func (h *Helper) Available() bool {
	return h.Status == HelperActive && h.WorkingStatus == WorkingOnline && !h.Deleted
}

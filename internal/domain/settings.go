package domain

import "time"

// GeneralSetting is the business-wide parameter singleton (a single row).
// Times are stored as minutes from midnight.
type GeneralSetting struct {
	ID int64 `json:"id"`

	// BaseSalary is the helper base pay per hour, in the currency's
	// smallest unit.
	BaseSalary int64 `json:"base_salary"`

	OfficeStartTime int `json:"office_start_time"`
	OfficeEndTime   int `json:"office_end_time"`

	OpenHour  int `json:"open_hour"`
	CloseHour int `json:"close_hour"`

	UpdatedAt time.Time `json:"updated_at"`
}

// OfficeStartHour returns the office opening hour-of-day.
func (g *GeneralSetting) OfficeStartHour() int { return g.OfficeStartTime / 60 }

// OfficeEndHour returns the office closing hour-of-day.
func (g *GeneralSetting) OfficeEndHour() int { return g.OfficeEndTime / 60 }

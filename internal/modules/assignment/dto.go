package assignment

type AssignRequest struct {
	HelperID int64 `json:"helper_id" binding:"required"`
}

// ChangeTimeRequest re-schedules a single shift. Times are minutes from
// midnight; an empty working date keeps the shift's current day. A zero
// cost means "re-price from the booking's coefficients".
type ChangeTimeRequest struct {
	WorkingDate string `json:"working_date"`
	StartTime   int    `json:"start_time"`
	EndTime     int    `json:"end_time"`
	Cost        int64  `json:"cost"`
}

type ChangeStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// ShiftCost reports one shift's helper pay after a whole-booking assignment.
type ShiftCost struct {
	ShiftID    int64 `json:"shift_id"`
	HelperCost int64 `json:"helper_cost"`
}

type AssignShiftResult struct {
	ShiftID    int64 `json:"shift_id"`
	HelperCost int64 `json:"helper_cost"`
	TotalCost  int64 `json:"total_cost"`
	Profit     int64 `json:"profit"`
}

type AssignBookingResult struct {
	BookingID      int64       `json:"booking_id"`
	HelperCostList []ShiftCost `json:"helper_cost_list"`
	TotalCost      int64       `json:"total_cost"`
	Profit         int64       `json:"profit"`
}

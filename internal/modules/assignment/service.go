package assignment

import (
	"context"
	"errors"
	"time"

	"homecare/internal/domain"
	"homecare/internal/modules/pricing"

	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	shifts   ShiftRepository
	helpers  HelperRepository
	calc     PayCalculator
}

func NewService(bookings BookingRepository, shifts ShiftRepository, helpers HelperRepository, calc PayCalculator) *Service {
	return &Service{
		bookings: bookings,
		shifts:   shifts,
		helpers:  helpers,
		calc:     calc,
	}
}

func bookingCoefficients(b *domain.Booking) pricing.Coefficients {
	return pricing.Coefficients{
		Service: b.CoefficientService,
		Other:   b.CoefficientOther,
		OT:      b.CoefficientOT,
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// deriveStatus computes the booking status from the current shift set.
// All-cancelled always wins, even when some shifts completed before the
// rest were cancelled. The final "completed" settlement is only ever set
// explicitly, never derived.
func deriveStatus(shifts []domain.Shift, current domain.BookingStatus) domain.BookingStatus {
	if current == domain.BookingCompleted {
		return current
	}

	var active []domain.Shift
	for _, s := range shifts {
		if s.Status != domain.ShiftCancelled {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return domain.BookingCancelled
	}

	allDone := true
	anyInProgress := false
	anyAssigned := false
	for _, s := range active {
		switch s.Status {
		case domain.ShiftCompleted, domain.ShiftWaitPayment:
			anyAssigned = true
		case domain.ShiftInProgress:
			anyInProgress = true
			allDone = false
		case domain.ShiftAssigned:
			anyAssigned = true
			allDone = false
		default:
			allDone = false
		}
	}

	switch {
	case allDone:
		return domain.BookingWaitPayment
	case anyInProgress:
		return domain.BookingInProgress
	case anyAssigned:
		return domain.BookingAssigned
	default:
		return domain.BookingPending
	}
}

// reconcile re-derives the booking's totals and status from the full shift
// set and writes them in one statement. Totals are never patched
// incrementally, so a stale in-memory figure cannot drift into the store.
func (s *Service) reconcile(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	shifts, err := s.shifts.ListByBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	var totalCost, helperTotal int64
	hasAssigned := false
	for _, sh := range shifts {
		if sh.Status == domain.ShiftCancelled {
			continue
		}
		totalCost += sh.Cost
		helperTotal += sh.HelperCost
		if sh.HelperID != nil || sh.Status != domain.ShiftPending {
			hasAssigned = true
		}
	}

	profit := int64(0)
	if hasAssigned {
		profit = totalCost - helperTotal
	}

	status := deriveStatus(shifts, b.Status)
	if err := s.bookings.UpdateFinancials(ctx, b.ID, totalCost, profit, status); err != nil {
		return nil, err
	}

	b.TotalCost = totalCost
	b.Profit = profit
	b.Status = status
	return b, nil
}

// AssignShift gives one shift to a helper, pricing the helper pay from the
// booking's coefficients and the helper's personal factor.
func (s *Service) AssignShift(ctx context.Context, shiftID, helperID int64) (*AssignShiftResult, error) {
	shift, err := s.shifts.GetByID(ctx, shiftID)
	if err != nil {
		return nil, notFound(err)
	}
	if !shift.Assignable() {
		return nil, ErrInvalidStatus
	}

	b, err := s.bookings.GetByID(ctx, shift.BookingID)
	if err != nil {
		return nil, notFound(err)
	}
	helper, err := s.helpers.GetByID(ctx, helperID)
	if err != nil {
		return nil, notFound(err)
	}
	if helper.Status != domain.HelperActive {
		return nil, ErrInvalidStatus
	}

	pay, err := s.calc.HelperPay(ctx, shift.StartTime, shift.EndTime, bookingCoefficients(b), helper.BaseFactor)
	if err != nil {
		return nil, err
	}

	ok, err := s.shifts.Assign(ctx, shiftID, shift.Status, helperID, pay)
	if err != nil {
		return nil, err
	}
	if !ok {
		// someone else moved the shift since we read it
		return nil, ErrInvalidStatus
	}

	// a reassignment hands the shift over: the displaced helper goes back
	// to the online pool
	if shift.HelperID != nil && *shift.HelperID != helperID {
		if err := s.helpers.UpdateWorkingStatus(ctx, *shift.HelperID, domain.WorkingOnline); err != nil {
			return nil, err
		}
	}

	b, err = s.reconcile(ctx, b)
	if err != nil {
		return nil, err
	}
	return &AssignShiftResult{
		ShiftID:    shiftID,
		HelperCost: pay,
		TotalCost:  b.TotalCost,
		Profit:     b.Profit,
	}, nil
}

// AssignBooking gives every still-assignable shift of a booking to one
// helper. Shifts already in progress, completed or cancelled keep their
// existing pay and are not re-priced.
func (s *Service) AssignBooking(ctx context.Context, bookingID, helperID int64) (*AssignBookingResult, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err)
	}
	helper, err := s.helpers.GetByID(ctx, helperID)
	if err != nil {
		return nil, notFound(err)
	}
	if helper.Status != domain.HelperActive {
		return nil, ErrInvalidStatus
	}

	shifts, err := s.shifts.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	coef := bookingCoefficients(b)
	var costs []ShiftCost
	for _, sh := range shifts {
		if !sh.Assignable() {
			continue
		}
		pay, err := s.calc.HelperPay(ctx, sh.StartTime, sh.EndTime, coef, helper.BaseFactor)
		if err != nil {
			return nil, err
		}
		ok, err := s.shifts.Assign(ctx, sh.ID, sh.Status, helperID, pay)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if sh.HelperID != nil && *sh.HelperID != helperID {
			if err := s.helpers.UpdateWorkingStatus(ctx, *sh.HelperID, domain.WorkingOnline); err != nil {
				return nil, err
			}
		}
		costs = append(costs, ShiftCost{ShiftID: sh.ID, HelperCost: pay})
	}
	if len(costs) == 0 {
		return nil, ErrInvalidStatus
	}

	b, err = s.reconcile(ctx, b)
	if err != nil {
		return nil, err
	}
	return &AssignBookingResult{
		BookingID:      bookingID,
		HelperCostList: costs,
		TotalCost:      b.TotalCost,
		Profit:         b.Profit,
	}, nil
}

// CancelShift cancels a single shift and reconciles the booking's totals.
// A shift past pending/assigned (including one already cancelled) is
// rejected, so a repeated cancel can never double-decrement the total.
func (s *Service) CancelShift(ctx context.Context, shiftID int64) error {
	shift, err := s.shifts.GetByID(ctx, shiftID)
	if err != nil {
		return notFound(err)
	}
	b, err := s.bookings.GetByID(ctx, shift.BookingID)
	if err != nil {
		return notFound(err)
	}

	ok, err := s.shifts.Cancel(ctx, shiftID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidStatus
	}

	if shift.HelperID != nil {
		if err := s.helpers.UpdateWorkingStatus(ctx, *shift.HelperID, domain.WorkingOnline); err != nil {
			return err
		}
	}

	_, err = s.reconcile(ctx, b)
	return err
}

// CancelBooking is the admin cancel-all. It is gated on every shift still
// being pending, assigned or already cancelled; once any shift has started
// the whole-booking cancel is refused.
func (s *Service) CancelBooking(ctx context.Context, bookingID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return notFound(err)
	}
	shifts, err := s.shifts.ListByBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	for _, sh := range shifts {
		if !sh.Assignable() && sh.Status != domain.ShiftCancelled {
			return ErrInvalidStatus
		}
	}

	for _, sh := range shifts {
		if sh.Status == domain.ShiftCancelled {
			continue
		}
		if _, err := s.shifts.Cancel(ctx, sh.ID); err != nil {
			return err
		}
		if sh.HelperID != nil {
			if err := s.helpers.UpdateWorkingStatus(ctx, *sh.HelperID, domain.WorkingOnline); err != nil {
				return err
			}
		}
	}

	_, err = s.reconcile(ctx, b)
	return err
}

// ChangeShiftTime re-schedules one shift and re-prices it: the customer
// cost replaces the old contribution to the booking total, and the helper
// pay is recomputed when a helper is already assigned.
func (s *Service) ChangeShiftTime(ctx context.Context, shiftID int64, req ChangeTimeRequest) error {
	if req.EndTime <= req.StartTime || req.Cost < 0 {
		return ErrValidation
	}

	shift, err := s.shifts.GetByID(ctx, shiftID)
	if err != nil {
		return notFound(err)
	}
	if !shift.Assignable() {
		return ErrInvalidStatus
	}
	b, err := s.bookings.GetByID(ctx, shift.BookingID)
	if err != nil {
		return notFound(err)
	}

	day := shift.WorkingDate
	if req.WorkingDate != "" {
		parsed, err := time.Parse("2006-01-02", req.WorkingDate)
		if err != nil {
			return ErrValidation
		}
		day = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), req.StartTime/60, req.StartTime%60, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), req.EndTime/60, req.EndTime%60, 0, 0, time.UTC)

	cost := req.Cost
	if cost == 0 {
		cost, err = s.calc.CustomerPrice(ctx, start, end, b.ServiceBasePrice, bookingCoefficients(b))
		if err != nil {
			return err
		}
	}
	helperCost := shift.HelperCost
	if shift.HelperID != nil {
		helper, err := s.helpers.GetByID(ctx, *shift.HelperID)
		if err != nil {
			return notFound(err)
		}
		helperCost, err = s.calc.HelperPay(ctx, start, end, bookingCoefficients(b), helper.BaseFactor)
		if err != nil {
			return err
		}
	}

	if err := s.shifts.UpdateTimes(ctx, shiftID, day, start, end, cost, helperCost); err != nil {
		return err
	}

	_, err = s.reconcile(ctx, b)
	return err
}

// shift transitions allowed through the generic status endpoint
var shiftTransitions = map[domain.ShiftStatus][]domain.ShiftStatus{
	domain.ShiftInProgress:  {domain.ShiftAssigned},
	domain.ShiftCompleted:   {domain.ShiftAssigned, domain.ShiftInProgress},
	domain.ShiftWaitPayment: {domain.ShiftCompleted},
}

// ChangeShiftStatus moves a shift along its lifecycle and cascades the
// derived status onto the parent booking.
func (s *Service) ChangeShiftStatus(ctx context.Context, shiftID int64, status domain.ShiftStatus, comment string) error {
	if status == domain.ShiftCancelled {
		return s.CancelShift(ctx, shiftID)
	}

	from, ok := shiftTransitions[status]
	if !ok {
		return ErrValidation
	}

	shift, err := s.shifts.GetByID(ctx, shiftID)
	if err != nil {
		return notFound(err)
	}
	b, err := s.bookings.GetByID(ctx, shift.BookingID)
	if err != nil {
		return notFound(err)
	}

	// payment collection covers the whole booking: a shift only moves to
	// waitPayment once every sibling has finished working
	if status == domain.ShiftWaitPayment {
		siblings, err := s.shifts.ListByBooking(ctx, shift.BookingID)
		if err != nil {
			return err
		}
		for _, sib := range siblings {
			switch sib.Status {
			case domain.ShiftCancelled, domain.ShiftCompleted, domain.ShiftWaitPayment:
			default:
				return ErrInvalidStatus
			}
		}
	}

	moved, err := s.shifts.UpdateStatusFrom(ctx, shiftID, from, status)
	if err != nil {
		return err
	}
	if !moved {
		return ErrInvalidStatus
	}

	if comment != "" {
		if err := s.shifts.UpdateComment(ctx, shiftID, comment); err != nil {
			return err
		}
	}

	// a shift finishing frees its helper for the next job
	if (status == domain.ShiftCompleted || status == domain.ShiftWaitPayment) && shift.HelperID != nil {
		if err := s.helpers.UpdateWorkingStatus(ctx, *shift.HelperID, domain.WorkingOnline); err != nil {
			return err
		}
	}

	_, err = s.reconcile(ctx, b)
	return err
}

// ChangeBookingStatus handles the explicit booking transitions: the final
// settlement to completed (gated on every non-cancelled shift being done)
// and the cancel-all form of cancelled.
func (s *Service) ChangeBookingStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	switch status {
	case domain.BookingCancelled:
		return s.CancelBooking(ctx, bookingID)
	case domain.BookingCompleted:
		b, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return notFound(err)
		}
		shifts, err := s.shifts.ListByBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		active := 0
		for _, sh := range shifts {
			switch sh.Status {
			case domain.ShiftCancelled, domain.ShiftCompleted, domain.ShiftWaitPayment:
			default:
				return ErrInvalidStatus
			}
			if sh.Status != domain.ShiftCancelled {
				active++
			}
		}
		if active == 0 {
			return ErrInvalidStatus
		}
		return s.bookings.UpdateStatus(ctx, b.ID, domain.BookingCompleted)
	default:
		return ErrValidation
	}
}

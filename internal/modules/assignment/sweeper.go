package assignment

import (
	"context"
	"errors"
	"log"
	"time"

	"homecare/internal/domain"

	"gorm.io/gorm"
)

// SweeperConfig tunes the auto-assignment sweep.
type SweeperConfig struct {
	// Interval between sweeps.
	Interval time.Duration
	// Lookahead bounds the window of shifts considered: start time within
	// [now, now+Lookahead).
	Lookahead time.Duration
	// Cutoff is the point of no return: an unassigned shift starting sooner
	// than this is cancelled instead of staffed.
	Cutoff time.Duration
}

func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		Interval:  5 * time.Minute,
		Lookahead: time.Hour,
		Cutoff:    30 * time.Minute,
	}
}

// Sweeper periodically staffs near-due unassigned shifts. Each sweep is
// independent: a shift not reached this pass is reconsidered on the next
// one. Sweep errors are logged and never stop the loop.
type Sweeper struct {
	bookings BookingRepository
	shifts   ShiftRepository
	helpers  HelperRepository
	calc     PayCalculator
	cfg      SweeperConfig

	now func() time.Time
}

func NewSweeper(bookings BookingRepository, shifts ShiftRepository, helpers HelperRepository, calc PayCalculator, cfg SweeperConfig) *Sweeper {
	return &Sweeper{
		bookings: bookings,
		shifts:   shifts,
		helpers:  helpers,
		calc:     calc,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Start runs the sweep loop in a goroutine until the context is done or
// the returned stop channel is closed.
func (w *Sweeper) Start(ctx context.Context) chan struct{} {
	stopCh := make(chan struct{})

	go func() {
		ticker := time.NewTicker(w.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := w.Sweep(ctx); err != nil {
					log.Printf("auto-assign sweep error: %v", err)
				}
			case <-stopCh:
				log.Println("auto-assign sweeper stopped")
				return
			case <-ctx.Done():
				log.Println("auto-assign sweeper stopped (context done)")
				return
			}
		}
	}()

	log.Printf("auto-assign sweeper started with interval %v", w.cfg.Interval)
	return stopCh
}

// Sweep is one pass: find today's pending shifts starting within the
// lookahead window and either staff them or, past the cutoff, cancel them.
// Within one pass a helper is claimed at most once.
func (w *Sweeper) Sweep(ctx context.Context) error {
	now := w.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	shifts, err := w.shifts.ListPendingInWindow(ctx, dayStart, dayEnd, now, now.Add(w.cfg.Lookahead))
	if err != nil {
		return err
	}

	var claimed []int64
	for _, shift := range shifts {
		if shift.StartTime.Sub(now) < w.cfg.Cutoff {
			if err := w.cancelLate(ctx, shift); err != nil {
				log.Printf("auto-assign: cancel shift %d: %v", shift.ID, err)
			}
			continue
		}

		helperID, err := w.staff(ctx, shift, claimed)
		if err != nil {
			log.Printf("auto-assign: staff shift %d: %v", shift.ID, err)
			continue
		}
		if helperID != 0 {
			claimed = append(claimed, helperID)
		}
	}
	return nil
}

// cancelLate drops a shift that can no longer be staffed in time and
// settles its booking when no pending shift remains: a multi-shift booking
// finishes as completed, a single-shift booking as cancelled.
func (w *Sweeper) cancelLate(ctx context.Context, shift domain.Shift) error {
	ok, err := w.shifts.Cancel(ctx, shift.ID)
	if err != nil {
		return err
	}
	if !ok {
		// already moved by a concurrent writer
		return nil
	}

	siblings, err := w.shifts.ListByBooking(ctx, shift.BookingID)
	if err != nil {
		return err
	}

	var totalCost, helperTotal int64
	pending := 0
	hasAssigned := false
	for _, sh := range siblings {
		if sh.Status == domain.ShiftPending {
			pending++
		}
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

	b, err := w.bookings.GetByID(ctx, shift.BookingID)
	if err != nil {
		return err
	}

	status := b.Status
	if pending == 0 {
		if len(siblings) > 1 {
			status = domain.BookingCompleted
		} else {
			status = domain.BookingCancelled
		}
	}
	return w.bookings.UpdateFinancials(ctx, shift.BookingID, totalCost, profit, status)
}

// staff claims the first available helper for the shift. Returns the
// claimed helper id, or 0 when no helper was available or the shift was
// taken by a concurrent writer.
func (w *Sweeper) staff(ctx context.Context, shift domain.Shift, claimed []int64) (int64, error) {
	helper, err := w.helpers.FirstAvailable(ctx, claimed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	b, err := w.bookings.GetByID(ctx, shift.BookingID)
	if err != nil {
		return 0, err
	}

	pay, err := w.calc.HelperPay(ctx, shift.StartTime, shift.EndTime, bookingCoefficients(b), helper.BaseFactor)
	if err != nil {
		return 0, err
	}

	ok, err := w.shifts.Assign(ctx, shift.ID, domain.ShiftPending, helper.ID, pay)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	if err := w.helpers.UpdateWorkingStatus(ctx, helper.ID, domain.WorkingBusy); err != nil {
		return helper.ID, err
	}

	var totalCost, helperTotal int64
	siblings, err := w.shifts.ListByBooking(ctx, shift.BookingID)
	if err != nil {
		return helper.ID, err
	}
	for _, sh := range siblings {
		if sh.Status == domain.ShiftCancelled {
			continue
		}
		totalCost += sh.Cost
		helperTotal += sh.HelperCost
	}

	status := b.Status
	if status == domain.BookingPending {
		status = domain.BookingAssigned
	}
	if err := w.bookings.UpdateFinancials(ctx, shift.BookingID, totalCost, totalCost-helperTotal, status); err != nil {
		return helper.ID, err
	}
	return helper.ID, nil
}

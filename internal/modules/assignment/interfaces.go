package assignment

import (
	"context"
	"time"

	"homecare/internal/domain"
	"homecare/internal/modules/pricing"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateFinancials(ctx context.Context, id, totalCost, profit int64, status domain.BookingStatus) error
}

type ShiftRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shift, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Shift, error)
	Assign(ctx context.Context, id int64, from domain.ShiftStatus, helperID int64, helperCost int64) (bool, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	UpdateTimes(ctx context.Context, id int64, day, start, end time.Time, cost, helperCost int64) error
	UpdateStatusFrom(ctx context.Context, id int64, from []domain.ShiftStatus, to domain.ShiftStatus) (bool, error)
	UpdateComment(ctx context.Context, id int64, comment string) error
	ListPendingInWindow(ctx context.Context, dayStart, dayEnd, from, to time.Time) ([]domain.Shift, error)
}

type HelperRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Helper, error)
	FirstAvailable(ctx context.Context, exclude []int64) (*domain.Helper, error)
	UpdateWorkingStatus(ctx context.Context, id int64, status domain.WorkingStatus) error
}

type PayCalculator interface {
	CustomerPrice(ctx context.Context, start, end time.Time, basicPrice int64, coef pricing.Coefficients) (int64, error)
	HelperPay(ctx context.Context, start, end time.Time, coef pricing.Coefficients, baseFactor float64) (int64, error)
}

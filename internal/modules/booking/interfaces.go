package booking

import (
	"context"
	"time"

	"homecare/internal/domain"
	"homecare/internal/modules/pricing"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	Save(ctx context.Context, b *domain.Booking) error
	MarkDeleted(ctx context.Context, id int64) error
}

type ShiftRepository interface {
	CreateBatch(ctx context.Context, shifts []*domain.Shift) error
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Shift, error)
	DeleteByBooking(ctx context.Context, bookingID int64) error
	CancelByBooking(ctx context.Context, bookingID int64) error
}

type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type CustomerRepository interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
}

type HelperRepository interface {
	List(ctx context.Context) ([]domain.Helper, error)
	UpdateWorkingStatus(ctx context.Context, id int64, status domain.WorkingStatus) error
}

type PriceCalculator interface {
	CustomerPrice(ctx context.Context, start, end time.Time, basicPrice int64, coef pricing.Coefficients) (int64, error)
}

package repository

import (
	"context"
	"time"

	"homecare/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID int64 `gorm:"column:id;primaryKey"`

	CustomerFullName string `gorm:"column:customer_full_name"`
	CustomerPhone    string `gorm:"column:customer_phone"`
	CustomerAddress  string `gorm:"column:customer_address"`
	UsedPoint        int64  `gorm:"column:used_point"`

	ServiceTitle       string  `gorm:"column:service_title"`
	ServiceBasePrice   int64   `gorm:"column:service_base_price"`
	CoefficientService float64 `gorm:"column:coefficient_service"`
	CoefficientOther   float64 `gorm:"column:coefficient_other"`
	CoefficientOT      float64 `gorm:"column:coefficient_ot"`

	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`

	TotalCost int64  `gorm:"column:total_cost"`
	Profit    int64  `gorm:"column:profit"`
	Status    string `gorm:"column:status"`
	Deleted   bool   `gorm:"column:deleted"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:                 m.ID,
		CustomerFullName:   m.CustomerFullName,
		CustomerPhone:      m.CustomerPhone,
		CustomerAddress:    m.CustomerAddress,
		UsedPoint:          m.UsedPoint,
		ServiceTitle:       m.ServiceTitle,
		ServiceBasePrice:   m.ServiceBasePrice,
		CoefficientService: m.CoefficientService,
		CoefficientOther:   m.CoefficientOther,
		CoefficientOT:      m.CoefficientOT,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		TotalCost:          m.TotalCost,
		Profit:             m.Profit,
		Status:             domain.BookingStatus(m.Status),
		Deleted:            m.Deleted,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:                 b.ID,
		CustomerFullName:   b.CustomerFullName,
		CustomerPhone:      b.CustomerPhone,
		CustomerAddress:    b.CustomerAddress,
		UsedPoint:          b.UsedPoint,
		ServiceTitle:       b.ServiceTitle,
		ServiceBasePrice:   b.ServiceBasePrice,
		CoefficientService: b.CoefficientService,
		CoefficientOther:   b.CoefficientOther,
		CoefficientOT:      b.CoefficientOT,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		TotalCost:          b.TotalCost,
		Profit:             b.Profit,
		Status:             string(b.Status),
		Deleted:            b.Deleted,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

// GetByID returns a booking that has not been soft-deleted.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("deleted = ?", false).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	var ms []bookingModel
	q := r.db.WithContext(ctx).Where("deleted = ?", false)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	tx := q.Order("created_at DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// Save writes the full row back. Used by edit, which is full-replace.
func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

// UpdateFinancials writes the recomputed totals together with the status so
// cost, profit and state always move in the same statement.
func (r *BookingRepository) UpdateFinancials(ctx context.Context, id, totalCost, profit int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_cost": totalCost,
			"profit":     profit,
			"status":     string(status),
		}).Error
}

func (r *BookingRepository) MarkDeleted(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted": true,
			"status":  string(domain.BookingCancelled),
		}).Error
}

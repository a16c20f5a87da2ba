package repository

import (
	"context"
	"time"

	"homecare/internal/domain"

	"gorm.io/gorm"
)

type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

type shiftModel struct {
	ID        int64 `gorm:"column:id;primaryKey"`
	BookingID int64 `gorm:"column:booking_id;index"`

	WorkingDate time.Time `gorm:"column:working_date"`
	StartTime   time.Time `gorm:"column:start_time"`
	EndTime     time.Time `gorm:"column:end_time"`

	HelperID   *int64 `gorm:"column:helper_id"`
	Cost       int64  `gorm:"column:cost"`
	HelperCost int64  `gorm:"column:helper_cost"`

	Status  string `gorm:"column:status"`
	Comment string `gorm:"column:comment"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (shiftModel) TableName() string { return "shifts" }

func toDomainShift(m shiftModel) *domain.Shift {
	return &domain.Shift{
		ID:          m.ID,
		BookingID:   m.BookingID,
		WorkingDate: m.WorkingDate,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		HelperID:    m.HelperID,
		Cost:        m.Cost,
		HelperCost:  m.HelperCost,
		Status:      domain.ShiftStatus(m.Status),
		Comment:     m.Comment,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toShiftModel(s *domain.Shift) shiftModel {
	return shiftModel{
		ID:          s.ID,
		BookingID:   s.BookingID,
		WorkingDate: s.WorkingDate,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		HelperID:    s.HelperID,
		Cost:        s.Cost,
		HelperCost:  s.HelperCost,
		Status:      string(s.Status),
		Comment:     s.Comment,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// CreateBatch inserts all shifts of a booking in one statement.
func (r *ShiftRepository) CreateBatch(ctx context.Context, shifts []*domain.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	ms := make([]shiftModel, 0, len(shifts))
	for _, s := range shifts {
		ms = append(ms, toShiftModel(s))
	}
	tx := r.db.WithContext(ctx).Create(&ms)
	if tx.Error != nil {
		return tx.Error
	}
	for i := range ms {
		*shifts[i] = *toDomainShift(ms[i])
	}
	return nil
}

func (r *ShiftRepository) GetByID(ctx context.Context, id int64) (*domain.Shift, error) {
	var m shiftModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainShift(m), nil
}

// ListByBooking returns the booking's shifts in schedule order.
func (r *ShiftRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Shift, error) {
	var ms []shiftModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("working_date ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Shift, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainShift(m))
	}
	return out, nil
}

// DeleteByBooking removes every shift of a booking. Edit is full-replace:
// the old schedule is dropped before the new one is inserted.
func (r *ShiftRepository) DeleteByBooking(ctx context.Context, bookingID int64) error {
	return r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&shiftModel{}).Error
}

// Assign writes helper, pay and assigned status, but only when the shift is
// still in the expected status. Returns false when another writer got there
// first, so racing callers lose cleanly instead of overwriting each other.
func (r *ShiftRepository) Assign(ctx context.Context, id int64, from domain.ShiftStatus, helperID int64, helperCost int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&shiftModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"helper_id":   helperID,
			"helper_cost": helperCost,
			"status":      string(domain.ShiftAssigned),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Cancel clears the helper, zeroes both cost fields and marks the shift
// cancelled, conditionally on it still being pending or assigned.
func (r *ShiftRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&shiftModel{}).
		Where("id = ? AND status IN ?", id, []string{string(domain.ShiftPending), string(domain.ShiftAssigned)}).
		Updates(map[string]any{
			"helper_id":   nil,
			"helper_cost": 0,
			"cost":        0,
			"status":      string(domain.ShiftCancelled),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// CancelByBooking cancels every shift of a booking unconditionally. Used by
// the cascading soft delete, which overrides per-shift state.
func (r *ShiftRepository) CancelByBooking(ctx context.Context, bookingID int64) error {
	return r.db.WithContext(ctx).
		Model(&shiftModel{}).
		Where("booking_id = ?", bookingID).
		Updates(map[string]any{
			"helper_id":   nil,
			"helper_cost": 0,
			"cost":        0,
			"status":      string(domain.ShiftCancelled),
		}).Error
}

// UpdateTimes re-schedules a shift. The working date moves together with
// the start/end instants so date-scoped queries keep seeing the shift.
func (r *ShiftRepository) UpdateTimes(ctx context.Context, id int64, day, start, end time.Time, cost, helperCost int64) error {
	return r.db.WithContext(ctx).
		Model(&shiftModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"working_date": day,
			"start_time":   start,
			"end_time":     end,
			"cost":         cost,
			"helper_cost":  helperCost,
		}).Error
}

// UpdateStatusFrom is a conditional status transition.
func (r *ShiftRepository) UpdateStatusFrom(ctx context.Context, id int64, from []domain.ShiftStatus, to domain.ShiftStatus) (bool, error) {
	froms := make([]string, 0, len(from))
	for _, f := range from {
		froms = append(froms, string(f))
	}
	tx := r.db.WithContext(ctx).
		Model(&shiftModel{}).
		Where("id = ? AND status IN ?", id, froms).
		Update("status", string(to))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *ShiftRepository) UpdateComment(ctx context.Context, id int64, comment string) error {
	return r.db.WithContext(ctx).
		Model(&shiftModel{}).
		Where("id = ?", id).
		Update("comment", comment).Error
}

// ListPendingInWindow returns unassigned shifts whose working date falls on
// the given day and whose start time lies in [from, to). Used by the
// auto-assignment sweep.
func (r *ShiftRepository) ListPendingInWindow(ctx context.Context, dayStart, dayEnd, from, to time.Time) ([]domain.Shift, error) {
	var ms []shiftModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(domain.ShiftPending)).
		Where("working_date >= ? AND working_date < ?", dayStart, dayEnd).
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Shift, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainShift(m))
	}
	return out, nil
}

package repository

import (
	"context"
	"time"

	"homecare/internal/domain"

	"gorm.io/gorm"
)

type HelperRepository struct {
	db *gorm.DB
}

func NewHelperRepository(db *gorm.DB) *HelperRepository {
	return &HelperRepository{db: db}
}

type helperModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	FullName      string    `gorm:"column:full_name"`
	Phone         string    `gorm:"column:phone"`
	BaseFactor    float64   `gorm:"column:base_factor"`
	Status        string    `gorm:"column:status"`
	WorkingStatus string    `gorm:"column:working_status"`
	Deleted       bool      `gorm:"column:deleted"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (helperModel) TableName() string { return "helpers" }

func toDomainHelper(m helperModel) *domain.Helper {
	return &domain.Helper{
		ID:            m.ID,
		FullName:      m.FullName,
		Phone:         m.Phone,
		BaseFactor:    m.BaseFactor,
		Status:        domain.HelperStatus(m.Status),
		WorkingStatus: domain.WorkingStatus(m.WorkingStatus),
		Deleted:       m.Deleted,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *HelperRepository) GetByID(ctx context.Context, id int64) (*domain.Helper, error) {
	var m helperModel
	tx := r.db.WithContext(ctx).Where("deleted = ?", false).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainHelper(m), nil
}

func (r *HelperRepository) Create(ctx context.Context, h *domain.Helper) error {
	m := helperModel{
		FullName:      h.FullName,
		Phone:         h.Phone,
		BaseFactor:    h.BaseFactor,
		Status:        string(h.Status),
		WorkingStatus: string(h.WorkingStatus),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*h = *toDomainHelper(m)
	return nil
}

func (r *HelperRepository) List(ctx context.Context) ([]domain.Helper, error) {
	var ms []helperModel
	tx := r.db.WithContext(ctx).Where("deleted = ?", false).Order("full_name ASC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Helper, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainHelper(m))
	}
	return out, nil
}

// FirstAvailable returns the first active online helper not in exclude.
// Selection is deliberately first-match; ranking is out of scope.
func (r *HelperRepository) FirstAvailable(ctx context.Context, exclude []int64) (*domain.Helper, error) {
	var m helperModel
	q := r.db.WithContext(ctx).
		Where("deleted = ?", false).
		Where("status = ?", string(domain.HelperActive)).
		Where("working_status = ?", string(domain.WorkingOnline))
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	tx := q.Order("id ASC").First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainHelper(m), nil
}

func (r *HelperRepository) UpdateWorkingStatus(ctx context.Context, id int64, status domain.WorkingStatus) error {
	return r.db.WithContext(ctx).
		Model(&helperModel{}).
		Where("id = ?", id).
		Update("working_status", string(status)).Error
}

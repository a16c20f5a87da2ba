package repository

import (
	"context"
	"time"

	"homecare/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	Title              string    `gorm:"column:title"`
	BasicPrice         int64     `gorm:"column:basic_price"`
	CoefficientService float64   `gorm:"column:coefficient_service"`
	CoefficientOther   float64   `gorm:"column:coefficient_other"`
	CoefficientOT      float64   `gorm:"column:coefficient_ot"`
	Status             string    `gorm:"column:status"`
	Deleted            bool      `gorm:"column:deleted"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.Service {
	return &domain.Service{
		ID:                 m.ID,
		Title:              m.Title,
		BasicPrice:         m.BasicPrice,
		CoefficientService: m.CoefficientService,
		CoefficientOther:   m.CoefficientOther,
		CoefficientOT:      m.CoefficientOT,
		Status:             domain.ServiceStatus(m.Status),
		Deleted:            m.Deleted,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).Where("deleted = ?", false).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) ListActive(ctx context.Context) ([]domain.Service, error) {
	var ms []serviceModel
	tx := r.db.WithContext(ctx).
		Where("deleted = ? AND status = ?", false, string(domain.ServiceActive)).
		Order("title ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Service, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := serviceModel{
		Title:              s.Title,
		BasicPrice:         s.BasicPrice,
		CoefficientService: s.CoefficientService,
		CoefficientOther:   s.CoefficientOther,
		CoefficientOT:      s.CoefficientOT,
		Status:             string(s.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

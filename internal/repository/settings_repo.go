package repository

import (
	"context"
	"time"

	"homecare/internal/domain"

	"gorm.io/gorm"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

type generalSettingModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	BaseSalary      int64     `gorm:"column:base_salary"`
	OfficeStartTime int       `gorm:"column:office_start_time"`
	OfficeEndTime   int       `gorm:"column:office_end_time"`
	OpenHour        int       `gorm:"column:open_hour"`
	CloseHour       int       `gorm:"column:close_hour"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (generalSettingModel) TableName() string { return "general_settings" }

func toDomainSetting(m generalSettingModel) *domain.GeneralSetting {
	return &domain.GeneralSetting{
		ID:              m.ID,
		BaseSalary:      m.BaseSalary,
		OfficeStartTime: m.OfficeStartTime,
		OfficeEndTime:   m.OfficeEndTime,
		OpenHour:        m.OpenHour,
		CloseHour:       m.CloseHour,
		UpdatedAt:       m.UpdatedAt,
	}
}

// Get returns the settings singleton. The row is read on every pricing call
// so coefficient changes take effect immediately.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.GeneralSetting, error) {
	var m generalSettingModel
	tx := r.db.WithContext(ctx).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSetting(m), nil
}

func (r *SettingsRepository) Save(ctx context.Context, g *domain.GeneralSetting) error {
	m := generalSettingModel{
		ID:              g.ID,
		BaseSalary:      g.BaseSalary,
		OfficeStartTime: g.OfficeStartTime,
		OfficeEndTime:   g.OfficeEndTime,
		OpenHour:        g.OpenHour,
		CloseHour:       g.CloseHour,
	}
	return r.db.WithContext(ctx).Save(&m).Error
}

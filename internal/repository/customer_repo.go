package repository

import (
	"context"
	"time"

	"homecare/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type customerModel struct {
	ID           int64          `gorm:"column:id;primaryKey"`
	FullName     string         `gorm:"column:full_name"`
	Phone        string         `gorm:"column:phone;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash"`
	Addresses    datatypes.JSON `gorm:"column:addresses"`
	Points       int64          `gorm:"column:points"`
	SignedUp     bool           `gorm:"column:signed_up"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (customerModel) TableName() string { return "customers" }

func toDomainCustomer(m customerModel) *domain.Customer {
	return &domain.Customer{
		ID:           m.ID,
		FullName:     m.FullName,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Addresses:    m.Addresses,
		Points:       m.Points,
		SignedUp:     m.SignedUp,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	var m customerModel
	tx := r.db.WithContext(ctx).Where("phone = ?", phone).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	m := customerModel{
		FullName:     c.FullName,
		Phone:        c.Phone,
		PasswordHash: c.PasswordHash,
		Addresses:    c.Addresses,
		Points:       c.Points,
		SignedUp:     c.SignedUp,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCustomer(m)
	return nil
}

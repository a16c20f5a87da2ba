package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table this backend owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&generalSettingModel{},
		&serviceModel{},
		&helperModel{},
		&customerModel{},
		&adminModel{},
		&bookingModel{},
		&shiftModel{},
	)
}

package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table this package owns. The
// persistence models are private, so migration lives here rather than
// in the callers.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&guestModel{},
		&bookingModel{},
		&billingModel{},
	)
}

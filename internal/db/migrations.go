// internal/db/migrations.go
package db

import (
	"marquee/internal/models"

	"gorm.io/gorm"
)

// Migrate прогоняет AutoMigrate по всем доменным моделям.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&models.Device{},
		&models.ProjectDocument{},
	)
}

package database

import (
	"gorm.io/gorm"

	"github.com/calovate/backend/internal/models"
)

// Migrate brings the schema up to date. The schema is small enough that GORM
// auto-migration covers both the postgres and sqlite deployments.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.NutritionGoals{},
		&models.FoodEntry{},
	)
}

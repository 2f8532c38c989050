package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// NutritionGoals holds a user's daily intake targets. One row per user,
// created with default values at signup.
type NutritionGoals struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Calories  float64   `gorm:"not null" json:"calories"`
	Protein   float64   `gorm:"not null" json:"protein"`
	Carbs     float64   `gorm:"not null" json:"carbs"`
	Sugar     float64   `gorm:"not null" json:"sugar"`
	Fat       float64   `gorm:"not null" json:"fat"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (NutritionGoals) TableName() string {
	return "nutrition_goals"
}

// DefaultGoals returns the targets assigned to newly created users.
func DefaultGoals(userID uuid.UUID) NutritionGoals {
	return NutritionGoals{
		ID:       uuid.New(),
		UserID:   userID,
		Calories: 2000,
		Protein:  120,
		Carbs:    250,
		Sugar:    50,
		Fat:      70,
	}
}

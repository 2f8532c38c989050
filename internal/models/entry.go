package models

import (
	"time"

	"github.com/google/uuid"
)

// FoodEntry is one recorded consumption event. ID and Date are assigned at
// creation and never change; Date is the sole temporal key used for grouping
// entries into days.
type FoodEntry struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Sugar     float64   `json:"sugar"`
	Fat       float64   `json:"fat"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FoodEntry) TableName() string {
	return "food_entries"
}

// DayKey formats a timestamp as its local calendar date, the grouping key for
// daily totals. Entries are compared by formatted date, not by normalized
// instants, matching how the log is presented to the user.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

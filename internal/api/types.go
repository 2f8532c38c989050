package api

import "time"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EntryRequest is the typed form of a food entry submission. Numeric fields
// are validated (non-negative, finite) before anything is stored; nothing is
// silently coerced.
type EntryRequest struct {
	Name     string     `json:"name" binding:"required"`
	Calories float64    `json:"calories"`
	Protein  float64    `json:"protein"`
	Carbs    float64    `json:"carbs"`
	Sugar    float64    `json:"sugar"`
	Fat      float64    `json:"fat"`
	Date     *time.Time `json:"date,omitempty"`
}

type GoalsRequest struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Sugar    float64 `json:"sugar"`
	Fat      float64 `json:"fat"`
}

// Package nutrition holds the pure aggregation logic: reducing food entries
// into nutrient totals and computing goal-relative progress values. Nothing in
// this package touches storage or holds state.
package nutrition

import (
	"errors"
	"fmt"
	"math"

	"github.com/calovate/backend/internal/models"
)

// ErrInvalidEntry is returned when an entry carries a negative or non-finite
// nutrient value, or an empty name.
var ErrInvalidEntry = errors.New("invalid food entry")

// Calories contributed by one gram of each macro-nutrient.
const (
	CaloriesPerGramProtein = 4
	CaloriesPerGramCarbs   = 4
	CaloriesPerGramFat     = 9
)

// Totals is the field-wise sum of nutrient values across a set of entries.
// Derived on every read, never persisted.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Sugar    float64 `json:"sugar"`
	Fat      float64 `json:"fat"`
}

// Shares is the fraction of total calories attributable to each macro,
// using the fixed per-gram energy factors.
type Shares struct {
	Protein float64 `json:"proteinShare"`
	Carbs   float64 `json:"carbsShare"`
	Fat     float64 `json:"fatShare"`
}

// Validate rejects entries with an empty name or a negative/non-finite
// nutrient value. Callers validate at the boundary so the reductions below
// can assume well-formed input.
func Validate(e models.FoodEntry) error {
	if e.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidEntry)
	}
	fields := map[string]float64{
		"calories": e.Calories,
		"protein":  e.Protein,
		"carbs":    e.Carbs,
		"sugar":    e.Sugar,
		"fat":      e.Fat,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidEntry, name)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidEntry, name)
		}
	}
	return nil
}

// Sum reduces entries to their nutrient totals. Empty input yields zero
// totals; order of the input does not matter.
func Sum(entries []models.FoodEntry) (Totals, error) {
	var t Totals
	for _, e := range entries {
		if err := Validate(e); err != nil {
			return Totals{}, err
		}
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Sugar += e.Sugar
		t.Fat += e.Fat
	}
	return t, nil
}

// GoalPercentage reports progress toward a daily goal as a whole percentage
// clamped to [0, 100]. Progress indicators never exceed "full". A zero or
// unset goal degrades to the raw consumed amount, still capped at 100.
func GoalPercentage(actual, goal float64) int {
	var p float64
	if goal <= 0 {
		p = math.Round(actual)
	} else {
		p = math.Round(actual / goal * 100)
	}
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return int(p)
}

// MacroCalorieShare splits total calories into the fractions contributed by
// protein, carbs and fat. When the logged calorie total disagrees with the
// macro-derived calorie count the inconsistency is passed through, not
// corrected; each share is only clamped into [0, 1].
func MacroCalorieShare(t Totals) Shares {
	denom := t.Calories
	if denom == 0 {
		denom = 1
	}
	return Shares{
		Protein: clampShare(t.Protein * CaloriesPerGramProtein / denom),
		Carbs:   clampShare(t.Carbs * CaloriesPerGramCarbs / denom),
		Fat:     clampShare(t.Fat * CaloriesPerGramFat / denom),
	}
}

func clampShare(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package nutrition

import (
	"time"

	"github.com/calovate/backend/internal/models"
)

// DayTotals pairs one calendar day with its nutrient totals.
type DayTotals struct {
	Day time.Time `json:"day"`
	Totals
}

// DailySeries computes per-day totals for every calendar day of ref's month,
// first day to last day inclusive. Days without entries are zero-filled so the
// series always has a fixed length suitable for charting. A zero ref means the
// current month.
func DailySeries(entries []models.FoodEntry, ref time.Time) ([]DayTotals, error) {
	if ref.IsZero() {
		ref = time.Now()
	}

	byDay := make(map[string]Totals)
	for _, e := range entries {
		if err := Validate(e); err != nil {
			return nil, err
		}
		key := models.DayKey(e.Date)
		t := byDay[key]
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Sugar += e.Sugar
		t.Fat += e.Fat
		byDay[key] = t
	}

	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	next := first.AddDate(0, 1, 0)

	series := make([]DayTotals, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		series = append(series, DayTotals{
			Day:    d,
			Totals: byDay[models.DayKey(d)],
		})
	}
	return series, nil
}

// ProgressRow is one nutrient's consumed-versus-goal line on the dashboard.
type ProgressRow struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	Percent  int     `json:"percent"`
}

// ProgressReport bundles the per-nutrient progress rows rendered by the daily
// dashboard.
func ProgressReport(t Totals, goals models.NutritionGoals) map[string]ProgressRow {
	row := func(consumed, goal float64) ProgressRow {
		return ProgressRow{
			Consumed: consumed,
			Goal:     goal,
			Percent:  GoalPercentage(consumed, goal),
		}
	}
	return map[string]ProgressRow{
		"calories": row(t.Calories, goals.Calories),
		"protein":  row(t.Protein, goals.Protein),
		"carbs":    row(t.Carbs, goals.Carbs),
		"sugar":    row(t.Sugar, goals.Sugar),
		"fat":      row(t.Fat, goals.Fat),
	}
}

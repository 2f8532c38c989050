package nutrition

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calovate/backend/internal/models"
)

func entry(name string, calories, protein, carbs, sugar, fat float64, date time.Time) models.FoodEntry {
	return models.FoodEntry{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Name:     name,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Sugar:    sugar,
		Fat:      fat,
		Date:     date,
	}
}

func TestSumEmptyInput(t *testing.T) {
	totals, err := Sum(nil)
	require.NoError(t, err)
	assert.Equal(t, Totals{}, totals)

	totals, err = Sum([]models.FoodEntry{})
	require.NoError(t, err)
	assert.Equal(t, Totals{}, totals)
}

func TestSumAddsEachField(t *testing.T) {
	now := time.Now()
	entries := []models.FoodEntry{
		entry("Oatmeal with Berries", 350, 12, 60, 15, 6, now),
		entry("Grilled Chicken Salad", 420, 35, 20, 5, 22, now),
	}

	totals, err := Sum(entries)
	require.NoError(t, err)
	assert.Equal(t, 770.0, totals.Calories)
	assert.Equal(t, 47.0, totals.Protein)
	assert.Equal(t, 80.0, totals.Carbs)
	assert.Equal(t, 20.0, totals.Sugar)
	assert.Equal(t, 28.0, totals.Fat)
}

func TestSumOrderIndependent(t *testing.T) {
	now := time.Now()
	entries := []models.FoodEntry{
		entry("a", 100, 1, 2, 3, 4, now),
		entry("b", 200, 5, 6, 7, 8, now),
		entry("c", 300, 9, 10, 11, 12, now),
	}
	reversed := []models.FoodEntry{entries[2], entries[1], entries[0]}

	forward, err := Sum(entries)
	require.NoError(t, err)
	backward, err := Sum(reversed)
	require.NoError(t, err)
	assert.Equal(t, forward, backward)
}

func TestSumToleratesZeroValues(t *testing.T) {
	totals, err := Sum([]models.FoodEntry{entry("water", 0, 0, 0, 0, 0, time.Now())})
	require.NoError(t, err)
	assert.Equal(t, Totals{}, totals)
}

func TestSumRejectsMalformedEntries(t *testing.T) {
	now := time.Now()

	_, err := Sum([]models.FoodEntry{entry("bad", -1, 0, 0, 0, 0, now)})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = Sum([]models.FoodEntry{entry("bad", math.NaN(), 0, 0, 0, 0, now)})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = Sum([]models.FoodEntry{entry("bad", math.Inf(1), 0, 0, 0, 0, now)})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = Sum([]models.FoodEntry{entry("", 100, 0, 0, 0, 0, now)})
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestGoalPercentage(t *testing.T) {
	assert.Equal(t, 39, GoalPercentage(770, 2000))
	assert.Equal(t, 0, GoalPercentage(0, 2000))
	assert.Equal(t, 100, GoalPercentage(2000, 2000))
	assert.Equal(t, 50, GoalPercentage(1, 2))
	// round, not truncate
	assert.Equal(t, 67, GoalPercentage(2, 3))
}

func TestGoalPercentageClampsAt100(t *testing.T) {
	assert.Equal(t, 100, GoalPercentage(5000, 2000))
	assert.Equal(t, 100, GoalPercentage(2001, 2000))
}

func TestGoalPercentageZeroGoal(t *testing.T) {
	// Unset goal degrades to the raw consumed amount, still capped at 100.
	assert.Equal(t, 42, GoalPercentage(42, 0))
	assert.Equal(t, 100, GoalPercentage(500, 0))
	assert.Equal(t, 0, GoalPercentage(0, 0))
	assert.Equal(t, 13, GoalPercentage(12.6, 0))
	// Negative goals behave like an unset goal.
	assert.Equal(t, 42, GoalPercentage(42, -5))
}

func TestGoalPercentageMonotonic(t *testing.T) {
	prev := GoalPercentage(0, 500)
	for actual := 1.0; actual <= 700; actual++ {
		p := GoalPercentage(actual, 500)
		assert.GreaterOrEqual(t, p, prev)
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 100)
		prev = p
	}
}

func TestMacroCalorieShare(t *testing.T) {
	// 100g protein = 400 kcal, 100g carbs = 400 kcal, 20g fat = 180 kcal
	shares := MacroCalorieShare(Totals{Calories: 1000, Protein: 100, Carbs: 100, Fat: 20})
	assert.InDelta(t, 0.4, shares.Protein, 1e-9)
	assert.InDelta(t, 0.4, shares.Carbs, 1e-9)
	assert.InDelta(t, 0.18, shares.Fat, 1e-9)
}

func TestMacroCalorieShareZeroCalories(t *testing.T) {
	shares := MacroCalorieShare(Totals{})
	assert.Equal(t, Shares{}, shares)

	// Zero logged calories but nonzero macros: denominator 1, shares clamp at 1.
	shares = MacroCalorieShare(Totals{Protein: 10})
	assert.Equal(t, 1.0, shares.Protein)
}

func TestMacroCalorieShareInconsistentEntries(t *testing.T) {
	// Macro-derived calories exceed the logged total; each share clamps at 1
	// instead of being corrected.
	shares := MacroCalorieShare(Totals{Calories: 100, Protein: 100, Carbs: 10, Fat: 5})
	assert.Equal(t, 1.0, shares.Protein)
	assert.InDelta(t, 0.4, shares.Carbs, 1e-9)
	assert.InDelta(t, 0.45, shares.Fat, 1e-9)
}

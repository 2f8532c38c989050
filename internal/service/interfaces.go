package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/calovate/backend/internal/models"
)

// EntryStore is the persistence collaborator for food entries. Implementations
// live in internal/store; exactly one is chosen per deployment.
type EntryStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.FoodEntry, error)
	Insert(ctx context.Context, entry *models.FoodEntry) error
	Update(ctx context.Context, entry *models.FoodEntry) error
	Delete(ctx context.Context, entryID uuid.UUID) error
}

// UserStore is the persistence collaborator for accounts and goals.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User, goals *models.NutritionGoals) error
	GetGoals(ctx context.Context, userID uuid.UUID) (*models.NutritionGoals, error)
	UpdateGoals(ctx context.Context, goals *models.NutritionGoals) error
}

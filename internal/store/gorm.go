// Package store contains the persistence collaborators behind the service
// interfaces: a gorm-backed store (postgres remote, or sqlite for the
// local-file deployment) and an optional redis cache-aside wrapper.
package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calovate/backend/internal/models"
)

// GormEntryStore persists food entries through gorm.
type GormEntryStore struct {
	db *gorm.DB
}

func NewGormEntryStore(db *gorm.DB) *GormEntryStore {
	return &GormEntryStore{db: db}
}

func (s *GormEntryStore) List(ctx context.Context, userID uuid.UUID) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *GormEntryStore) Insert(ctx context.Context, entry *models.FoodEntry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *GormEntryStore) Update(ctx context.Context, entry *models.FoodEntry) error {
	return s.db.WithContext(ctx).Save(entry).Error
}

func (s *GormEntryStore) Delete(ctx context.Context, entryID uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.FoodEntry{}, "id = ?", entryID).Error
}

// GormUserStore persists accounts and goals through gorm.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the user and their initial goals in one transaction so a
// half-created account cannot exist.
func (s *GormUserStore) Create(ctx context.Context, user *models.User, goals *models.NutritionGoals) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(goals).Error
	})
}

func (s *GormUserStore) GetGoals(ctx context.Context, userID uuid.UUID) (*models.NutritionGoals, error) {
	var goals models.NutritionGoals
	if err := s.db.WithContext(ctx).First(&goals, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &goals, nil
}

func (s *GormUserStore) UpdateGoals(ctx context.Context, goals *models.NutritionGoals) error {
	return s.db.WithContext(ctx).Save(goals).Error
}

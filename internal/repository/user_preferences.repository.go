package repository

import (
	"context"
	"errors"

	"gutly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserPreferencesRepository interface {
	// FindByUser returns nil, nil for a user who never stored preferences.
	FindByUser(ctx context.Context, userID string) (*models.UserPreferences, error)
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
}

type userPreferencesRepository struct {
	db *gorm.DB
}

func NewUserPreferencesRepository(db *gorm.DB) UserPreferencesRepository {
	return &userPreferencesRepository{db: db}
}

func (r *userPreferencesRepository) FindByUser(ctx context.Context, userID string) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := r.db.WithContext(ctx).Where("whop_user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *userPreferencesRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "whop_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"onboarding_completed", "onboarding_answers", "dismissed_tips", "updated_at"}),
	}).Create(prefs).Error
}

// Package mocks holds testify mocks shared by service and controller tests.
package mocks

import (
	"context"
	"time"

	"gutly/internal/models"
	"gutly/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) FindByUser(ctx context.Context, userID string, limit int) ([]models.Meal, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

func (m *MockMealRepository) FindByID(ctx context.Context, userID string, id uuid.UUID) (*models.Meal, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealRepository) FindRecentByTitle(ctx context.Context, userID, title string, since time.Time) (*models.Meal, error) {
	args := m.Called(ctx, userID, title, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealRepository) Insert(ctx context.Context, meal *models.Meal, omit ...string) error {
	args := m.Called(ctx, meal, omit)
	return args.Error(0)
}

func (m *MockMealRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockMealRepository) DeleteAllByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// WithSaveLock records the call and runs fn against the mock itself, so the
// operations inside the lock can be stubbed like any other.
func (m *MockMealRepository) WithSaveLock(ctx context.Context, userID, title string, fn func(repository.MealRepository) error) error {
	args := m.Called(ctx, userID, title)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

type MockUserPreferencesRepository struct {
	mock.Mock
}

func (m *MockUserPreferencesRepository) FindByUser(ctx context.Context, userID string) (*models.UserPreferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPreferences), args.Error(1)
}

func (m *MockUserPreferencesRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

package utils

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"gutly/internal/mocks"
	"gutly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSampleMeals(t *testing.T) {
	now := time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC)
	meals := SampleMeals("user_1", 3, 2, now, rand.New(rand.NewSource(1)))

	require.Len(t, meals, 6)
	assert.Equal(t, time.Date(2025, 3, 8, 7, 0, 0, 0, time.UTC), meals[0].CreatedAt)
	assert.Equal(t, time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC), meals[5].CreatedAt)
	for _, m := range meals {
		assert.Equal(t, "user_1", m.WhopUserID)
		assert.NotEmpty(t, m.Title)
		for _, s := range []int{m.MoodScore, m.MentalClarityScore, m.EnergyScore, m.DigestionScore, m.OverallScore} {
			assert.GreaterOrEqual(t, s, 0)
			assert.LessOrEqual(t, s, 100)
		}
	}
}

func TestSeedMealsStopsOnError(t *testing.T) {
	repo := &mocks.MockMealRepository{}
	meals := []*models.Meal{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	repo.On("Insert", mock.Anything, meals[0], mock.Anything).Return(nil)
	repo.On("Insert", mock.Anything, meals[1], mock.Anything).Return(errors.New("boom"))

	n, err := SeedMeals(context.Background(), repo, meals)
	assert.Error(t, err)
	assert.Equal(t, 1, n)
	repo.AssertNotCalled(t, "Insert", mock.Anything, meals[2], mock.Anything)
}

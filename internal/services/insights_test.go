package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gutly/internal/mocks"
	"gutly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func historyMeals() []models.Meal {
	return []models.Meal{
		{Title: "Oats", GutScore: 80, MentalScore: 70, DetectedIngredients: []string{"Oats", "Banana"}, CreatedAt: fixedNow.Add(-time.Hour)},
		{Title: "Burger", GutScore: 40, MentalScore: 50, DetectedIngredients: []string{"Beef", "Bun"}, CreatedAt: fixedNow.Add(-9 * 24 * time.Hour)},
	}
}

func newInsights(repo *mocks.MockMealRepository, gen *mocks.MockInsightGenerator, cache *mocks.MockInsightsCache) *InsightsService {
	var s *InsightsService
	if cache != nil {
		s = NewInsightsService(repo, gen, cache, nil)
	} else {
		s = NewInsightsService(repo, gen, nil, nil)
	}
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestGenerateInsightsNoMeals(t *testing.T) {
	repo := &mocks.MockMealRepository{}
	gen := &mocks.MockInsightGenerator{}
	repo.On("FindByUser", mock.Anything, "user_1", InsightsMealLimit).Return([]models.Meal{}, nil)

	got := newInsights(repo, gen, nil).Generate(context.Background(), "user_1")
	assert.Equal(t, FallbackInsights(), got)
	gen.AssertNotCalled(t, "GenerateInsights", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateInsightsCapsAndFillsDefaults(t *testing.T) {
	repo := &mocks.MockMealRepository{}
	gen := &mocks.MockInsightGenerator{}
	cache := &mocks.MockInsightsCache{}

	repo.On("FindByUser", mock.Anything, "user_1", InsightsMealLimit).Return(historyMeals(), nil)
	gen.On("GenerateInsights", mock.Anything, mock.MatchedBy(func(p string) bool {
		return containsAll(p, "Oats", "Banana", "improving", "Total Meals Tracked: 2", "Recent Meals (last 7 days): 1")
	}), mock.Anything).Return(`{"insights":[
		{"icon":"🌿","message":"Oats feed your gut.","impactColor":"bg-green-50"},
		{"message":"Keep it up."},
		{},
		{"icon":"⚡","message":"fourth","impactColor":"bg-yellow-50"}
	]}`, nil)
	cache.On("Get", mock.Anything, "user_1").Return(nil, false, nil)
	cache.On("Store", mock.Anything, "user_1", mock.Anything).Return(nil)

	got := newInsights(repo, gen, cache).Generate(context.Background(), "user_1")

	assert.Equal(t, []models.Insight{
		{Icon: "🌿", Message: "Oats feed your gut.", ImpactColor: "bg-green-50"},
		{Icon: "💡", Message: "Keep it up.", ImpactColor: "bg-blue-50"},
		{Icon: "💡", Message: "Track more meals for insights", ImpactColor: "bg-blue-50"},
	}, got)
	cache.AssertCalled(t, "Store", mock.Anything, "user_1", got)
}

func TestGenerateInsightsFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{"provider error", "", errors.New("rate limited")},
		{"not json", "nope", nil},
		{"missing insights", `{"tips":[]}`, nil},
		{"insights not array", `{"insights":"many"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockMealRepository{}
			gen := &mocks.MockInsightGenerator{}
			repo.On("FindByUser", mock.Anything, "user_1", InsightsMealLimit).Return(historyMeals(), nil)
			gen.On("GenerateInsights", mock.Anything, mock.Anything, mock.Anything).Return(tt.raw, tt.err)

			got := newInsights(repo, gen, nil).Generate(context.Background(), "user_1")
			assert.Equal(t, FallbackInsights(), got)
		})
	}
}

func TestGenerateInsightsStoreFailure(t *testing.T) {
	repo := &mocks.MockMealRepository{}
	repo.On("FindByUser", mock.Anything, "user_1", InsightsMealLimit).Return(nil, errors.New("db down"))

	got := newInsights(repo, &mocks.MockInsightGenerator{}, nil).Generate(context.Background(), "user_1")
	assert.Equal(t, FallbackInsights(), got)
}

func TestGenerateInsightsServedFromCache(t *testing.T) {
	repo := &mocks.MockMealRepository{}
	cache := &mocks.MockInsightsCache{}
	cached := []models.Insight{{Icon: "🧠", Message: "cached", ImpactColor: "bg-green-50"}}
	cache.On("Get", mock.Anything, "user_1").Return(cached, true, nil)

	got := newInsights(repo, &mocks.MockInsightGenerator{}, cache).Generate(context.Background(), "user_1")
	assert.Equal(t, cached, got)
	repo.AssertNotCalled(t, "FindByUser", mock.Anything, mock.Anything, mock.Anything)
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

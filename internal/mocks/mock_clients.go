package mocks

import (
	"context"

	"gutly/internal/auth"
	"gutly/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockMealScorer struct {
	mock.Mock
}

func (m *MockMealScorer) ScoreMeal(ctx context.Context, imageDataURI string) (string, error) {
	args := m.Called(ctx, imageDataURI)
	return args.String(0), args.Error(1)
}

type MockInsightGenerator struct {
	mock.Mock
}

func (m *MockInsightGenerator) GenerateInsights(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) GetUser(ctx context.Context, userID string) (*auth.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, userID, dataURI string) (string, error) {
	args := m.Called(ctx, userID, dataURI)
	return args.String(0), args.Error(1)
}

type MockInsightsCache struct {
	mock.Mock
}

func (m *MockInsightsCache) Get(ctx context.Context, userID string) ([]models.Insight, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.Insight), args.Bool(1), args.Error(2)
}

func (m *MockInsightsCache) Store(ctx context.Context, userID string, insights []models.Insight) error {
	args := m.Called(ctx, userID, insights)
	return args.Error(0)
}

func (m *MockInsightsCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

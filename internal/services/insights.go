package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gutly/internal/analysis"
	"gutly/internal/metrics"
	"gutly/internal/models"
	"gutly/internal/openai"
	"gutly/internal/repository"

	"go.uber.org/zap"
)

const (
	// InsightsMealLimit is how many recent meals feed the insights prompt.
	InsightsMealLimit = 50
	// MaxInsights caps the cards returned to the client.
	MaxInsights = 3

	defaultInsightIcon    = "💡"
	defaultInsightMessage = "Track more meals for insights"
	defaultInsightColor   = "bg-blue-50"
)

// FallbackInsights is served whenever real insights cannot be produced.
func FallbackInsights() []models.Insight {
	return []models.Insight{{
		Icon:        defaultInsightIcon,
		Message:     "Keep tracking your meals to see personalized insights!",
		ImpactColor: defaultInsightColor,
	}}
}

type InsightsCache interface {
	Get(ctx context.Context, userID string) ([]models.Insight, bool, error)
	Store(ctx context.Context, userID string, insights []models.Insight) error
}

type InsightsService struct {
	repo      repository.MealRepository
	generator openai.InsightGenerator
	cache     InsightsCache
	logger    *zap.Logger
	now       func() time.Time
}

// NewInsightsService builds the service. cache may be nil.
func NewInsightsService(repo repository.MealRepository, generator openai.InsightGenerator, cache InsightsCache, logger *zap.Logger) *InsightsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsService{
		repo:      repo,
		generator: generator,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate never fails: every error path degrades to FallbackInsights.
func (s *InsightsService) Generate(ctx context.Context, userID string) []models.Insight {
	log := s.logger.With(zap.String("user_id", userID))

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			log.Warn("insights cache read failed", zap.Error(err))
		} else if ok {
			return cached
		}
	}

	meals, err := s.repo.FindByUser(ctx, userID, InsightsMealLimit)
	if err != nil {
		log.Error("failed to fetch meals for insights", zap.Error(err))
		return FallbackInsights()
	}
	if len(meals) == 0 {
		return FallbackInsights()
	}

	trend := metrics.ComputeWeeklyTrend(meals, s.now())
	raw, err := s.generator.GenerateInsights(ctx, analysis.InsightsSystemPrompt(meals, trend), analysis.InsightsUserPrompt())
	if err != nil {
		log.Error("failed to generate insights", zap.Error(err))
		return FallbackInsights()
	}

	insights, ok := parseInsights(raw)
	if !ok {
		log.Warn("insights response unusable", zap.String("response", raw))
		return FallbackInsights()
	}

	if s.cache != nil {
		if err := s.cache.Store(ctx, userID, insights); err != nil {
			log.Warn("insights cache write failed", zap.Error(err))
		}
	}
	return insights
}

// parseInsights keeps at most MaxInsights entries and fills missing fields.
func parseInsights(raw string) ([]models.Insight, bool) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false
	}
	items, ok := doc["insights"].([]any)
	if !ok {
		return nil, false
	}

	out := make([]models.Insight, 0, MaxInsights)
	for _, item := range items[:min(len(items), MaxInsights)] {
		entry, _ := item.(map[string]any)
		out = append(out, models.Insight{
			Icon:        stringOr(entry["icon"], defaultInsightIcon),
			Message:     stringOr(entry["message"], defaultInsightMessage),
			ImpactColor: stringOr(entry["impactColor"], defaultInsightColor),
		})
	}
	return out, true
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

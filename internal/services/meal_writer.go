package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gutly/internal/analysis"
	"gutly/internal/models"
	"gutly/internal/repository"
	"gutly/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DuplicateWindow is how far back a same-title save counts as a double submit.
	DuplicateWindow = 5 * time.Minute

	SchemaDriftWarning = "personalized_insights column not found in database - please run migration"
)

var ErrValidation = errors.New("validation failed")

type SaveOutcome string

const (
	OutcomeCreated   SaveOutcome = "created"
	OutcomeDuplicate SaveOutcome = "duplicate"
	OutcomePartial   SaveOutcome = "partial"
)

// SaveMealRequest is an analysis the client chose to keep, plus the image it
// was produced from.
type SaveMealRequest struct {
	models.MealAnalysis
	ImageURL string `json:"image_url" example:"data:image/jpeg;base64,/9j/4AAQ..."`
}

type SaveResult struct {
	Outcome SaveOutcome
	Meal    *models.Meal
	Warning string
}

// InsightsInvalidator drops derived per-user data after the meal list changes.
type InsightsInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

type MealWriter struct {
	repo   repository.MealRepository
	images storage.ImageStore
	cache  InsightsInvalidator
	logger *zap.Logger
	now    func() time.Time
}

// NewMealWriter builds a writer. images and cache may be nil.
func NewMealWriter(repo repository.MealRepository, images storage.ImageStore, cache InsightsInvalidator, logger *zap.Logger) *MealWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MealWriter{
		repo:   repo,
		images: images,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

func (w *MealWriter) Save(ctx context.Context, userID string, req SaveMealRequest) (*SaveResult, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.ImageURL == "" {
		return nil, fmt.Errorf("%w: missing required fields: title and image_url", ErrValidation)
	}
	for _, field := range analysis.ClampScores(&req.MealAnalysis) {
		w.logger.Warn("score out of range on save, clamped", zap.String("user_id", userID), zap.String("field", field))
	}

	meal, err := models.NewMeal(userID, w.imageRef(ctx, userID, req.ImageURL), req.MealAnalysis)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var result *SaveResult
	err = w.repo.WithSaveLock(ctx, userID, req.Title, func(tx repository.MealRepository) error {
		existing, err := tx.FindRecentByTitle(ctx, userID, req.Title, w.now().Add(-DuplicateWindow))
		if err != nil {
			return err
		}
		if existing != nil {
			w.logger.Info("duplicate meal save suppressed",
				zap.String("user_id", userID),
				zap.String("existing_id", existing.ID.String()),
			)
			result = &SaveResult{Outcome: OutcomeDuplicate, Meal: existing}
			return nil
		}

		err = tx.Insert(ctx, meal, meal.MissingOptionalColumns()...)
		if err == nil {
			result = &SaveResult{Outcome: OutcomeCreated, Meal: meal}
			return nil
		}
		if !repository.IsUndefinedColumn(err) {
			return err
		}

		w.logger.Warn("optional meal columns missing, retrying without them", zap.Error(err))
		if err := tx.Insert(ctx, meal, models.OptionalMealColumns...); err != nil {
			return err
		}
		result = &SaveResult{Outcome: OutcomePartial, Meal: meal, Warning: SchemaDriftWarning}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Outcome != OutcomeDuplicate {
		w.invalidate(ctx, userID)
	}
	return result, nil
}

// imageRef uploads inline images when a store is configured. Any failure
// keeps the data URI so the save itself still succeeds.
func (w *MealWriter) imageRef(ctx context.Context, userID, image string) string {
	if w.images == nil || !storage.IsDataURI(image) {
		return image
	}
	url, err := w.images.Upload(ctx, userID, image)
	if err != nil {
		w.logger.Warn("image upload failed, storing data URI", zap.String("user_id", userID), zap.Error(err))
		return image
	}
	return url
}

func (w *MealWriter) invalidate(ctx context.Context, userID string) {
	if w.cache == nil {
		return
	}
	if err := w.cache.Invalidate(ctx, userID); err != nil {
		w.logger.Warn("failed to invalidate insights cache", zap.String("user_id", userID), zap.Error(err))
	}
}

// Delete removes one of the user's meals. Deleting an id the user does not
// own, or that no longer exists, is not an error.
func (w *MealWriter) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if err := w.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	w.invalidate(ctx, userID)
	return nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"gutly/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const insertSavepoint = "meal_insert"

type MealRepository interface {
	FindByUser(ctx context.Context, userID string, limit int) ([]models.Meal, error)
	FindByID(ctx context.Context, userID string, id uuid.UUID) (*models.Meal, error)
	FindRecentByTitle(ctx context.Context, userID, title string, since time.Time) (*models.Meal, error)
	Insert(ctx context.Context, meal *models.Meal, omit ...string) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userID string) (int64, error)
	// WithSaveLock runs fn in a transaction holding a lock on (userID, title),
	// so a duplicate check and the following insert cannot interleave with
	// another save of the same title.
	WithSaveLock(ctx context.Context, userID, title string, fn func(MealRepository) error) error
}

type mealRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

// FindByUser returns the user's meals newest first. limit <= 0 returns all.
func (r *mealRepository) FindByUser(ctx context.Context, userID string, limit int) ([]models.Meal, error) {
	meals := []models.Meal{}
	q := r.db.WithContext(ctx).
		Where("whop_user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&meals).Error
	return meals, err
}

func (r *mealRepository) FindByID(ctx context.Context, userID string, id uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := r.db.WithContext(ctx).
		Where("id = ? AND whop_user_id = ?", id, userID).
		First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// FindRecentByTitle returns nil, nil when no matching meal exists.
func (r *mealRepository) FindRecentByTitle(ctx context.Context, userID, title string, since time.Time) (*models.Meal, error) {
	var meals []models.Meal
	err := r.db.WithContext(ctx).
		Select("id", "whop_user_id", "title", "created_at").
		Where("whop_user_id = ? AND title = ? AND created_at >= ?", userID, title, since).
		Order("created_at DESC").
		Limit(1).
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, nil
	}
	return &meals[0], nil
}

// Insert creates the meal, leaving out the omitted columns. Inside
// WithSaveLock a failed insert is rolled back to a savepoint so the
// transaction stays usable for a retry.
func (r *mealRepository) Insert(ctx context.Context, meal *models.Meal, omit ...string) error {
	q := r.db.WithContext(ctx)
	if len(omit) > 0 {
		q = q.Omit(omit...)
	}
	if !r.inTx {
		return q.Create(meal).Error
	}

	if err := r.db.SavePoint(insertSavepoint).Error; err != nil {
		return err
	}
	if err := q.Create(meal).Error; err != nil {
		if rbErr := r.db.RollbackTo(insertSavepoint).Error; rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return nil
}

func (r *mealRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND whop_user_id = ?", id, userID).
		Delete(&models.Meal{}).Error
}

func (r *mealRepository) DeleteAllByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("whop_user_id = ?", userID).
		Delete(&models.Meal{})
	return res.RowsAffected, res.Error
}

func (r *mealRepository) WithSaveLock(ctx context.Context, userID, title string, fn func(MealRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", userID+"|"+title).Error; err != nil {
			return err
		}
		return fn(&mealRepository{db: tx, inTx: true})
	})
}

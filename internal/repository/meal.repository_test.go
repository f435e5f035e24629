package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"gutly/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T, matchers ...sqlmock.QueryMatcher) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	matcher := sqlmock.QueryMatcherRegexp
	if len(matchers) > 0 {
		matcher = matchers[0]
	}
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var mealColumns = []string{"id", "whop_user_id", "title", "overall_score", "created_at"}

func TestMealRepositoryFindByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMealRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(mealColumns).
		AddRow(uuid.New(), "user_1", "Newest", 80, now).
		AddRow(uuid.New(), "user_1", "Older", 60, now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "meals" WHERE whop_user_id = $1 ORDER BY created_at DESC`)).
		WillReturnRows(rows)

	meals, err := repo.FindByUser(context.Background(), "user_1", 50)
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "Newest", meals[0].Title)
	assert.Equal(t, 80, meals[0].OverallScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMealRepositoryFindByUserEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMealRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "meals"`).WillReturnRows(sqlmock.NewRows(mealColumns))

	meals, err := repo.FindByUser(context.Background(), "user_1", 0)
	require.NoError(t, err)
	assert.NotNil(t, meals)
	assert.Empty(t, meals)
}

func TestMealRepositoryFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMealRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "meals" WHERE id = $1 AND whop_user_id = $2`)).
		WillReturnRows(sqlmock.NewRows(mealColumns))

	meal, err := repo.FindByID(context.Background(), "user_1", uuid.New())
	assert.Nil(t, meal)
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestMealRepositoryFindRecentByTitle(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMealRepository(db)
	since := time.Now().Add(-5 * time.Minute)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE whop_user_id = $1 AND title = $2 AND created_at >= $3`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "whop_user_id", "title", "created_at"}).
			AddRow(id, "user_1", "Bowl", time.Now()))

	meal, err := repo.FindRecentByTitle(context.Background(), "user_1", "Bowl", since)
	require.NoError(t, err)
	require.NotNil(t, meal)
	assert.Equal(t, id, meal.ID)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE whop_user_id = $1 AND title = $2 AND created_at >= $3`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	meal, err = repo.FindRecentByTitle(context.Background(), "user_1", "Bowl", since)
	require.NoError(t, err)
	assert.Nil(t, meal)
}

func TestMealRepositoryDeleteIsOwnerScoped(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMealRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "meals" WHERE id = $1 AND whop_user_id = $2`)).
		WithArgs(id, "user_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "user_1", id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMealRepositoryInsertOmitsColumns(t *testing.T) {
	var inserted string
	matcher := sqlmock.QueryMatcherFunc(func(expectedSQL, actualSQL string) error {
		if !strings.HasPrefix(actualSQL, expectedSQL) {
			return fmt.Errorf("unexpected query %q", actualSQL)
		}
		inserted = actualSQL
		return nil
	})
	db, mock := newMockDB(t, matcher)
	repo := NewMealRepository(db)

	mock.ExpectExec(`INSERT INTO "meals"`).WillReturnResult(sqlmock.NewResult(0, 1))

	meal, err := models.NewMeal("user_1", "data:image/png;base64,AA", models.MealAnalysis{
		Title:          "Bowl",
		GutInsights:    map[string]any{"a": "b"},
		MentalInsights: map[string]any{"c": "d"},
	})
	require.NoError(t, err)

	require.NoError(t, repo.Insert(context.Background(), meal, models.OptionalMealColumns...))
	assert.NotEqual(t, uuid.Nil, meal.ID)
	assert.NotContains(t, inserted, "personalized_insights")
	assert.NotContains(t, inserted, "wellness_insights")
	assert.Contains(t, inserted, "gut_insights")
}

func TestMealRepositoryWithSaveLock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMealRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock(hashtext($1))`)).
		WithArgs("user_1|Bowl").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .* FROM "meals" WHERE whop_user_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	err := repo.WithSaveLock(context.Background(), "user_1", "Bowl", func(tx MealRepository) error {
		existing, err := tx.FindRecentByTitle(context.Background(), "user_1", "Bowl", time.Now().Add(-5*time.Minute))
		assert.Nil(t, existing)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMealRepositoryWithSaveLockRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMealRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := repo.WithSaveLock(context.Background(), "user_1", "Bowl", func(MealRepository) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMealRepositoryInsertRetriesAfterSavepointRollback(t *testing.T) {
	var inserts []string
	matcher := sqlmock.QueryMatcherFunc(func(expectedSQL, actualSQL string) error {
		if !strings.Contains(actualSQL, expectedSQL) {
			return fmt.Errorf("expected %q, got %q", expectedSQL, actualSQL)
		}
		if strings.HasPrefix(actualSQL, "INSERT") {
			inserts = append(inserts, actualSQL)
		}
		return nil
	})
	db, mock := newMockDB(t, matcher)
	repo := NewMealRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SAVEPOINT meal_insert").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "meals"`).
		WillReturnError(&pgconn.PgError{Code: "42703", Message: `column "wellness_insights" of relation "meals" does not exist`})
	mock.ExpectExec("ROLLBACK TO SAVEPOINT meal_insert").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SAVEPOINT meal_insert").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "meals"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	meal, err := models.NewMeal("user_1", "data:image/png;base64,AA", models.MealAnalysis{
		Title:            "Bowl",
		GutInsights:      map[string]any{"a": "b"},
		MentalInsights:   map[string]any{"c": "d"},
		WellnessInsights: map[string]any{"mood": "steady"},
		PersonalizedInsights: &models.PersonalizedInsights{Insights: []models.PersonalizedInsight{
			{Type: models.InsightTypeGut, Message: "Fiber feeds your gut."},
		}},
	})
	require.NoError(t, err)

	err = repo.WithSaveLock(context.Background(), "user_1", "Bowl", func(tx MealRepository) error {
		firstErr := tx.Insert(context.Background(), meal)
		require.True(t, IsUndefinedColumn(firstErr))
		return tx.Insert(context.Background(), meal, models.OptionalMealColumns...)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, inserts, 2)
	assert.Contains(t, inserts[0], "wellness_insights")
	assert.Contains(t, inserts[0], "personalized_insights")
	assert.NotContains(t, inserts[1], "wellness_insights")
	assert.NotContains(t, inserts[1], "personalized_insights")
}

func TestIsUndefinedColumn(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"pg undefined column", &pgconn.PgError{Code: "42703", Message: `column "personalized_insights" of relation "meals" does not exist`}, true},
		{"wrapped pg error", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "42703"}), true},
		{"other pg error", &pgconn.PgError{Code: "23502", Message: `null value in column "title" violates not-null constraint`}, false},
		{"schema cache message", errors.New("Could not find the 'personalized_insights' column of 'meals' in the schema cache"), true},
		{"unrelated column message", errors.New(`column "title" does not exist`), false},
		{"connection error", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUndefinedColumn(tt.err))
		})
	}
}

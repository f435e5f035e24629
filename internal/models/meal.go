package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Columns added after the first meals migration. Older deployments may not
// have them yet.
const (
	ColumnWellnessInsights     = "wellness_insights"
	ColumnPersonalizedInsights = "personalized_insights"
)

var OptionalMealColumns = []string{ColumnWellnessInsights, ColumnPersonalizedInsights}

type Meal struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id" example:"4f5b7c1e-8d7a-4c1e-9a55-1d2f3e4a5b6c"`
	WhopUserID           string         `gorm:"column:whop_user_id;index:idx_meals_user_created,priority:1" json:"whop_user_id" example:"user_abc123"`
	Title                string         `json:"title" example:"Salmon quinoa bowl"`
	ImageURL             string         `gorm:"type:text" json:"image_url"`
	DetectedIngredients  pq.StringArray `gorm:"type:text[]" json:"detected_ingredients" swaggertype:"array,string"`
	MoodScore            int            `json:"mood_score" example:"78"`
	MentalClarityScore   int            `json:"mental_clarity_score" example:"82"`
	EnergyScore          int            `json:"energy_score" example:"75"`
	DigestionScore       int            `json:"digestion_score" example:"80"`
	GutScore             int            `json:"gut_score" example:"81"`
	MentalScore          int            `json:"mental_score" example:"79"`
	OverallScore         int            `json:"overall_score" example:"80"`
	ShortVerdict         string         `gorm:"type:text" json:"short_verdict"`
	GutInsights          datatypes.JSON `gorm:"type:jsonb" json:"gut_insights" swaggertype:"object"`
	MentalInsights       datatypes.JSON `gorm:"type:jsonb" json:"mental_insights" swaggertype:"object"`
	WellnessInsights     datatypes.JSON `gorm:"type:jsonb" json:"wellness_insights,omitempty" swaggertype:"object"`
	PersonalizedInsights datatypes.JSON `gorm:"type:jsonb" json:"personalized_insights,omitempty" swaggertype:"object"`
	Reasons              pq.StringArray `gorm:"type:text[]" json:"reasons" swaggertype:"array,string"`
	Alternatives         pq.StringArray `gorm:"type:text[]" json:"alternatives" swaggertype:"array,string"`
	CreatedAt            time.Time      `gorm:"index:idx_meals_user_created,priority:2" json:"created_at" example:"2025-01-01T12:00:00Z"`
}

func (Meal) TableName() string {
	return "meals"
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// NewMeal converts an analysis into an unsaved meal owned by userID.
func NewMeal(userID, imageURL string, a MealAnalysis) (*Meal, error) {
	gut, err := marshalJSON(a.GutInsights)
	if err != nil {
		return nil, fmt.Errorf("gut_insights: %w", err)
	}
	mental, err := marshalJSON(a.MentalInsights)
	if err != nil {
		return nil, fmt.Errorf("mental_insights: %w", err)
	}

	meal := &Meal{
		WhopUserID:          userID,
		Title:               a.Title,
		ImageURL:            imageURL,
		DetectedIngredients: nonNil(a.DetectedIngredients),
		MoodScore:           a.MoodScore,
		MentalClarityScore:  a.MentalClarityScore,
		EnergyScore:         a.EnergyScore,
		DigestionScore:      a.DigestionScore,
		GutScore:            a.GutScore,
		MentalScore:         a.MentalScore,
		OverallScore:        a.OverallScore,
		ShortVerdict:        a.ShortVerdict,
		GutInsights:         gut,
		MentalInsights:      mental,
		Reasons:             nonNil(a.Reasons),
		Alternatives:        nonNil(a.Alternatives),
	}

	if a.WellnessInsights != nil {
		if meal.WellnessInsights, err = marshalJSON(a.WellnessInsights); err != nil {
			return nil, fmt.Errorf("wellness_insights: %w", err)
		}
	}
	if a.PersonalizedInsights != nil {
		if meal.PersonalizedInsights, err = marshalJSON(a.PersonalizedInsights); err != nil {
			return nil, fmt.Errorf("personalized_insights: %w", err)
		}
	}

	return meal, nil
}

// MissingOptionalColumns lists optional columns this meal carries no value
// for, so the insert can leave them out entirely.
func (m *Meal) MissingOptionalColumns() []string {
	var cols []string
	if len(m.WellnessInsights) == 0 {
		cols = append(cols, ColumnWellnessInsights)
	}
	if len(m.PersonalizedInsights) == 0 {
		cols = append(cols, ColumnPersonalizedInsights)
	}
	return cols
}

func marshalJSON(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func nonNil(s []string) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(s)
}

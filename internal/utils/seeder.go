package utils

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gutly/internal/models"
	"gutly/internal/repository"
)

const (
	DefaultSeedDays    = 14
	DefaultMealsPerDay = 3
)

type sampleMeal struct {
	title       string
	ingredients []string
	base        int
}

var sampleMeals = []sampleMeal{
	{"Salmon quinoa bowl", []string{"Salmon", "Quinoa", "Broccoli", "Avocado"}, 82},
	{"Greek yogurt with berries", []string{"Greek yogurt", "Blueberries", "Honey", "Walnuts"}, 85},
	{"Kimchi fried rice", []string{"Rice", "Kimchi", "Egg", "Scallions"}, 74},
	{"Lentil soup", []string{"Lentils", "Carrot", "Onion", "Cumin"}, 80},
	{"Cheeseburger and fries", []string{"Beef", "Cheese", "Bun", "Potato"}, 42},
	{"Oatmeal with banana", []string{"Oats", "Banana", "Cinnamon", "Almond milk"}, 78},
	{"Pepperoni pizza", []string{"Dough", "Mozzarella", "Pepperoni", "Tomato sauce"}, 45},
	{"Chicken stir fry", []string{"Chicken", "Bell pepper", "Ginger", "Soy sauce"}, 70},
}

// SampleMeals builds perDay meals for each of the last days days, ending
// today. Scores vary around each sample's base so dashboards show trends.
func SampleMeals(userID string, days, perDay int, now time.Time, rng *rand.Rand) []*models.Meal {
	meals := make([]*models.Meal, 0, days*perDay)
	for d := days - 1; d >= 0; d-- {
		day := now.AddDate(0, 0, -d)
		for i := 0; i < perDay; i++ {
			s := sampleMeals[rng.Intn(len(sampleMeals))]
			score := func() int { return clampScore(s.base + rng.Intn(15) - 7) }

			gut, mental := score(), score()
			meals = append(meals, &models.Meal{
				WhopUserID:          userID,
				Title:               s.title,
				ImageURL:            "https://placehold.co/600x400?text=meal",
				DetectedIngredients: append([]string(nil), s.ingredients...),
				MoodScore:           score(),
				MentalClarityScore:  score(),
				EnergyScore:         score(),
				DigestionScore:      score(),
				GutScore:            gut,
				MentalScore:         mental,
				OverallScore:        (gut + mental) / 2,
				ShortVerdict:        fmt.Sprintf("Sample %s entry.", s.title),
				GutInsights:         []byte(`{"fiber_content":"sample data"}`),
				MentalInsights:      []byte(`{"mood_stability":"sample data"}`),
				Reasons:             []string{},
				Alternatives:        []string{},
				CreatedAt:           mealTime(day, i, perDay),
			})
		}
	}
	return meals
}

// mealTime spreads a day's meals between 07:00 and 20:00.
func mealTime(day time.Time, i, perDay int) time.Time {
	start := time.Date(day.Year(), day.Month(), day.Day(), 7, 0, 0, 0, day.Location())
	if perDay <= 1 {
		return start.Add(5 * time.Hour)
	}
	step := 13 * time.Hour / time.Duration(perDay-1)
	return start.Add(time.Duration(i) * step)
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// SeedMeals inserts meals one by one and reports how many were stored.
func SeedMeals(ctx context.Context, repo repository.MealRepository, meals []*models.Meal) (int, error) {
	for i, m := range meals {
		if err := repo.Insert(ctx, m, m.MissingOptionalColumns()...); err != nil {
			return i, fmt.Errorf("insert meal %d: %w", i, err)
		}
	}
	return len(meals), nil
}

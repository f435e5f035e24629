package metrics

import (
	"time"

	"gutly/internal/models"
)

const week = 7 * 24 * time.Hour

const (
	DirectionImproving = "improving"
	DirectionDeclining = "declining"
	DirectionStable    = "stable"
)

type ScoreTrend struct {
	Recent    float64 `json:"recent"`
	Previous  float64 `json:"previous"`
	Direction string  `json:"direction"`
}

// WeeklyTrend compares the last 7 days with the 7 days before them.
type WeeklyTrend struct {
	Gut         ScoreTrend `json:"gut"`
	Mental      ScoreTrend `json:"mental"`
	RecentMeals int        `json:"recent_meals"`
}

func ComputeWeeklyTrend(meals []models.Meal, now time.Time) WeeklyTrend {
	recentStart := now.Add(-week)
	previousStart := now.Add(-2 * week)

	var recent, previous []models.Meal
	for _, m := range meals {
		switch {
		case !m.CreatedAt.Before(recentStart):
			recent = append(recent, m)
		case !m.CreatedAt.Before(previousStart):
			previous = append(previous, m)
		}
	}

	gut := func(m models.Meal) int { return m.GutScore }
	mental := func(m models.Meal) int { return m.MentalScore }

	return WeeklyTrend{
		Gut:         newScoreTrend(average(recent, gut), average(previous, gut)),
		Mental:      newScoreTrend(average(recent, mental), average(previous, mental)),
		RecentMeals: len(recent),
	}
}

func newScoreTrend(recent, previous float64) ScoreTrend {
	dir := DirectionStable
	switch {
	case recent > previous:
		dir = DirectionImproving
	case recent < previous:
		dir = DirectionDeclining
	}
	return ScoreTrend{Recent: recent, Previous: previous, Direction: dir}
}

func average(meals []models.Meal, score func(models.Meal) int) float64 {
	if len(meals) == 0 {
		return 0
	}
	sum := 0
	for _, m := range meals {
		sum += score(m)
	}
	return float64(sum) / float64(len(meals))
}

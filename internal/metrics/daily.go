package metrics

import (
	"math"
	"time"

	"gutly/internal/models"
)

const (
	// StreakThreshold is the minimum daily mean overall score that keeps a streak alive.
	StreakThreshold = 70
	// MaxStreakDays bounds how far back the streak walk looks.
	MaxStreakDays = 30

	dayLayout = "2006-01-02"
)

type MetricValue struct {
	Percentage int `json:"percentage"`
	Trend      int `json:"trend"`
}

// DailyMetrics is derived on every request from the user's meal list.
type DailyMetrics struct {
	Date          string      `json:"date"`
	MealCount     int         `json:"meal_count"`
	OverallScore  MetricValue `json:"overall_score"`
	MoodStability MetricValue `json:"mood_stability"`
	Digestion     MetricValue `json:"digestion"`
	EnergyLevels  MetricValue `json:"energy_levels"`
	FocusClarity  MetricValue `json:"focus_clarity"`
}

// DayKey is the calendar date of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dayLayout)
}

// MealsOn returns the meals created on the same calendar day as day, in loc.
func MealsOn(meals []models.Meal, day time.Time, loc *time.Location) []models.Meal {
	key := DayKey(day, loc)
	var out []models.Meal
	for _, m := range meals {
		if DayKey(m.CreatedAt, loc) == key {
			out = append(out, m)
		}
	}
	return out
}

type dayMeans struct {
	overall, mood, digestion, energy, focus int
}

func means(meals []models.Meal) dayMeans {
	if len(meals) == 0 {
		return dayMeans{}
	}
	var overall, mood, digestion, energy, focus int
	for _, m := range meals {
		overall += m.OverallScore
		mood += m.MoodScore
		digestion += m.DigestionScore
		energy += m.EnergyScore
		focus += m.MentalClarityScore
	}
	n := float64(len(meals))
	return dayMeans{
		overall:   roundMean(overall, n),
		mood:      roundMean(mood, n),
		digestion: roundMean(digestion, n),
		energy:    roundMean(energy, n),
		focus:     roundMean(focus, n),
	}
}

func roundMean(sum int, n float64) int {
	return int(math.Round(float64(sum) / n))
}

// ComputeDaily averages each score over the meals of day and compares with
// the previous calendar day. An empty day yields zeros; the trend is zero
// when the previous day has no meals.
func ComputeDaily(meals []models.Meal, day time.Time, loc *time.Location) DailyMetrics {
	if loc == nil {
		loc = time.UTC
	}
	day = day.In(loc)
	today := MealsOn(meals, day, loc)
	out := DailyMetrics{Date: DayKey(day, loc), MealCount: len(today)}
	if len(today) == 0 {
		return out
	}

	cur := means(today)
	yesterday := MealsOn(meals, day.AddDate(0, 0, -1), loc)
	prev := cur
	if len(yesterday) > 0 {
		prev = means(yesterday)
	}

	out.OverallScore = MetricValue{cur.overall, cur.overall - prev.overall}
	out.MoodStability = MetricValue{cur.mood, cur.mood - prev.mood}
	out.Digestion = MetricValue{cur.digestion, cur.digestion - prev.digestion}
	out.EnergyLevels = MetricValue{cur.energy, cur.energy - prev.energy}
	out.FocusClarity = MetricValue{cur.focus, cur.focus - prev.focus}
	return out
}

// Streak counts consecutive days, walking back from today, whose mean overall
// score is at least StreakThreshold. It stops at the first day without meals
// or below the threshold.
func Streak(meals []models.Meal, today time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	byDay := make(map[string][]int)
	for _, m := range meals {
		k := DayKey(m.CreatedAt, loc)
		byDay[k] = append(byDay[k], m.OverallScore)
	}

	today = today.In(loc)
	streak := 0
	for i := 0; i < MaxStreakDays; i++ {
		scores := byDay[DayKey(today.AddDate(0, 0, -i), loc)]
		if len(scores) == 0 {
			break
		}
		sum := 0
		for _, s := range scores {
			sum += s
		}
		if float64(sum)/float64(len(scores)) < StreakThreshold {
			break
		}
		streak++
	}
	return streak
}

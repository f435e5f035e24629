package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gutly/internal/metrics"
	"gutly/internal/models"
)

const (
	// InsightsHistorySize is how many recent meals are quoted in the prompt.
	InsightsHistorySize = 20
	// InsightsIngredientLimit caps the distinct ingredients listed.
	InsightsIngredientLimit = 15
)

type mealSummary struct {
	Title               string    `json:"title"`
	Date                time.Time `json:"date"`
	GutScore            int       `json:"gut_score"`
	MentalScore         int       `json:"mental_score"`
	OverallScore        int       `json:"overall_score"`
	MoodScore           int       `json:"mood_score"`
	MentalClarityScore  int       `json:"mental_clarity_score"`
	EnergyScore         int       `json:"energy_score"`
	DigestionScore      int       `json:"digestion_score"`
	DetectedIngredients []string  `json:"detected_ingredients"`
}

// InsightsSystemPrompt describes the user's history (newest first) to the
// model and asks for 2-3 insight cards as JSON.
func InsightsSystemPrompt(meals []models.Meal, trend metrics.WeeklyTrend) string {
	summaries := make([]mealSummary, 0, min(len(meals), InsightsHistorySize))
	for _, m := range meals[:min(len(meals), InsightsHistorySize)] {
		ingredients := []string(m.DetectedIngredients)
		if ingredients == nil {
			ingredients = []string{}
		}
		summaries = append(summaries, mealSummary{
			Title:               m.Title,
			Date:                m.CreatedAt,
			GutScore:            m.GutScore,
			MentalScore:         m.MentalScore,
			OverallScore:        m.OverallScore,
			MoodScore:           m.MoodScore,
			MentalClarityScore:  m.MentalClarityScore,
			EnergyScore:         m.EnergyScore,
			DigestionScore:      m.DigestionScore,
			DetectedIngredients: ingredients,
		})
	}
	history, _ := json.MarshalIndent(summaries, "", "  ")

	var b strings.Builder
	b.WriteString(`You are a Gut-Mind Health Assistant that analyzes a user's meal history to provide specific, personalized, and actionable insights.

Given a user's meal history data, analyze their patterns and generate 2-3 short, specific insights that:
- Are SPECIFIC: Mention actual ingredients, nutrients, or patterns you observe
- Are INTERESTING: Give cause-and-effect statements explaining why it matters
- Are PERSONAL: Phrase in second-person ("you")
- Are SHORT: Each insight is at most 2 sentences
- Are ACTIONABLE: Help the user understand what to do next
- Are ACCURATE: Based on actual data from their meals

Meal History Data:
`)
	b.Write(history)
	fmt.Fprintf(&b, `

Recent Trends (Last 7 days vs Previous 7 days):
- Gut Score: %.1f (recent) vs %.1f (previous) - %s
- Mental Score: %.1f (recent) vs %.1f (previous) - %s
- Total Meals Tracked: %d
- Recent Meals (last 7 days): %d

Common ingredients across meals:
%s
`,
		trend.Gut.Recent, trend.Gut.Previous, trend.Gut.Direction,
		trend.Mental.Recent, trend.Mental.Previous, trend.Mental.Direction,
		len(meals), trend.RecentMeals,
		strings.Join(CommonIngredients(meals, InsightsIngredientLimit), ", "),
	)
	b.WriteString(`
Return the response as JSON with this exact structure:
{
  "insights": [
    {
      "icon": "🌿",
      "message": "Specific insight about their meal patterns, mentioning actual ingredients or nutrients when relevant",
      "impactColor": "bg-green-50"
    },
    {
      "icon": "💡",
      "message": "Another specific insight based on their data",
      "impactColor": "bg-blue-50"
    }
  ]
}

Rules:
- Use icons that match the insight (🌿 for fiber/gut, 🧠 for mental, ⚡ for energy, 💪 for strength, etc.)
- Use impactColor: "bg-green-50" for positive insights, "bg-blue-50" for neutral/informative, "bg-yellow-50" for warnings
- Be specific about percentages, ingredients, or patterns when you have the data
- Focus on actionable insights that help the user improve their gut-mind health
- If you notice patterns (e.g., high fiber meals correlate with better scores), mention it specifically`)
	return b.String()
}

func InsightsUserPrompt() string {
	return "Analyze this user's meal history and generate 2-3 personalized insights. Focus on specific patterns, ingredients, or trends you observe in their data."
}

// CommonIngredients returns up to limit distinct ingredients in first-seen
// order across meals.
func CommonIngredients(meals []models.Meal, limit int) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, m := range meals {
		for _, ing := range m.DetectedIngredients {
			if _, ok := seen[ing]; ok {
				continue
			}
			if len(out) == limit {
				return out
			}
			seen[ing] = struct{}{}
			out = append(out, ing)
		}
	}
	return out
}

package models

// Personalized insight tags returned by the scoring model.
const (
	InsightTypeGut     = "Gut"
	InsightTypeMind    = "Mind"
	InsightTypeBalance = "Balance"
)

// MealAnalysis is the transient result of one scoring call. It is only
// persisted when the user explicitly saves it as a Meal.
type MealAnalysis struct {
	Title               string   `json:"title" example:"Salmon quinoa bowl"`
	DetectedIngredients []string `json:"detected_ingredients" example:"Salmon,Quinoa,Broccoli,Avocado"`

	MoodScore          int `json:"mood_score" example:"78"`
	MentalClarityScore int `json:"mental_clarity_score" example:"82"`
	EnergyScore        int `json:"energy_score" example:"75"`
	DigestionScore     int `json:"digestion_score" example:"80"`

	GutScore     int `json:"gut_score" example:"81"`
	MentalScore  int `json:"mental_score" example:"79"`
	OverallScore int `json:"overall_score" example:"80"`

	GutInsights      map[string]any `json:"gut_insights"`
	MentalInsights   map[string]any `json:"mental_insights"`
	WellnessInsights map[string]any `json:"wellness_insights,omitempty"`

	ShortVerdict string   `json:"short_verdict" example:"A balanced, gut-friendly meal."`
	Reasons      []string `json:"reasons"`
	Alternatives []string `json:"alternatives"`

	PersonalizedInsights *PersonalizedInsights `json:"personalized_insights,omitempty"`
}

type PersonalizedInsights struct {
	Insights []PersonalizedInsight `json:"insights"`
}

type PersonalizedInsight struct {
	Type    string `json:"type" example:"Gut"`
	Message string `json:"message"`
}

// Insight is one dashboard card produced from the user's meal history.
type Insight struct {
	Icon        string `json:"icon" example:"🌿"`
	Message     string `json:"message"`
	ImpactColor string `json:"impactColor" example:"bg-green-50"`
}

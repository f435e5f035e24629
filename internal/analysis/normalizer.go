package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gutly/internal/models"

	"go.uber.org/zap"
)

var (
	// ErrInvalidModelOutput means the model reply was not a JSON object.
	ErrInvalidModelOutput = errors.New("the AI returned an invalid JSON response")
	// ErrIncompleteModelOutput means required analysis fields were missing.
	ErrIncompleteModelOutput = errors.New("the AI response is missing required fields")
)

const (
	minScore = 0
	maxScore = 100
)

// Normalizer turns raw model text into a MealAnalysis. Shape deviations that
// can be repaired are repaired and logged; only unparseable text and missing
// required fields are rejected.
type Normalizer struct {
	logger *zap.Logger
}

func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

func (n *Normalizer) Normalize(raw string) (*models.MealAnalysis, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		n.logger.Error("model output is not valid JSON", zap.Error(err), zap.String("response", raw))
		return nil, fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}

	title := asString(data["title"])
	gut, gutOK := data["gut_insights"].(map[string]any)
	mental, mentalOK := data["mental_insights"].(map[string]any)
	if title == "" || !gutOK || !mentalOK {
		n.logger.Error("model output is missing required fields",
			zap.Bool("has_title", title != ""),
			zap.Bool("has_gut_insights", gutOK),
			zap.Bool("has_mental_insights", mentalOK),
		)
		return nil, ErrIncompleteModelOutput
	}

	a := &models.MealAnalysis{
		Title:               title,
		GutInsights:         gut,
		MentalInsights:      mental,
		DetectedIngredients: n.ingredients(data["detected_ingredients"]),
		WellnessInsights:    n.wellnessInsights(data),
		ShortVerdict:        asString(data["short_verdict"]),
		Reasons:             stringList(data["reasons"]),
		Alternatives:        stringList(data["alternatives"]),
	}

	a.MoodScore = n.score(data, "mood_score")
	a.MentalClarityScore = n.score(data, "mental_clarity_score")
	a.EnergyScore = n.score(data, "energy_score")
	a.DigestionScore = n.score(data, "digestion_score")
	a.GutScore = n.score(data, "gut_score")
	a.MentalScore = n.score(data, "mental_score")
	a.OverallScore = n.score(data, "overall_score")

	a.PersonalizedInsights = n.personalizedInsights(data["personalized_insights"])

	n.logger.Debug("detected ingredients", zap.Strings("ingredients", a.DetectedIngredients))
	return a, nil
}

// ingredients always yields a list. A string is given one more chance as
// JSON-encoded list before being dropped.
func (n *Normalizer) ingredients(v any) []string {
	switch val := v.(type) {
	case nil:
		n.logger.Warn("detected_ingredients field is missing from response")
		return []string{}
	case []any:
		return stringList(val)
	case string:
		var list []any
		if err := json.Unmarshal([]byte(val), &list); err != nil {
			n.logger.Warn("detected_ingredients is a non-JSON string, dropping it", zap.String("value", val))
			return []string{}
		}
		n.logger.Warn("detected_ingredients was a string-encoded list, repaired")
		return stringList(list)
	default:
		n.logger.Warn("detected_ingredients is not a list, dropping it", zap.Any("value", val))
		return []string{}
	}
}

func (n *Normalizer) wellnessInsights(data map[string]any) map[string]any {
	v, ok := data["wellness_insights"]
	if !ok || v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		n.logger.Warn("wellness_insights is not an object, replacing with empty object", zap.Any("value", v))
		return map[string]any{}
	}
	return m
}

// score coerces a field to an integer in [0,100].
func (n *Normalizer) score(data map[string]any, field string) int {
	v, ok := data[field]
	if !ok || v == nil {
		n.logger.Warn("score missing from response", zap.String("field", field))
		return 0
	}
	s, repaired := coerceScore(v)
	if repaired {
		n.logger.Warn("score repaired", zap.String("field", field), zap.Any("value", v), zap.Int("score", s))
	}
	return s
}

func coerceScore(v any) (int, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(val), "%")), 64)
		if err != nil {
			return 0, true
		}
		return clamp(parsed), true
	default:
		return 0, true
	}
	s := clamp(f)
	return s, float64(s) != f
}

func clamp(f float64) int {
	if math.IsNaN(f) {
		return minScore
	}
	r := int(math.Round(f))
	if r < minScore {
		return minScore
	}
	if r > maxScore {
		return maxScore
	}
	return r
}

// ClampScores forces every score of a into [0,100] and returns the names of
// the fields it changed.
func ClampScores(a *models.MealAnalysis) []string {
	var repaired []string
	for i, p := range scorePointers(a) {
		if c := clamp(float64(*p)); c != *p {
			*p = c
			repaired = append(repaired, ScoreFields[i])
		}
	}
	return repaired
}

// scorePointers follows the order of ScoreFields.
func scorePointers(a *models.MealAnalysis) []*int {
	return []*int{
		&a.MoodScore,
		&a.MentalClarityScore,
		&a.EnergyScore,
		&a.DigestionScore,
		&a.GutScore,
		&a.MentalScore,
		&a.OverallScore,
	}
}

var insightTypes = map[string]bool{
	models.InsightTypeGut:     true,
	models.InsightTypeMind:    true,
	models.InsightTypeBalance: true,
}

func (n *Normalizer) personalizedInsights(v any) *models.PersonalizedInsights {
	m, ok := v.(map[string]any)
	if !ok {
		if v != nil {
			n.logger.Warn("personalized_insights is not an object, dropping it", zap.Any("value", v))
		}
		return nil
	}
	items, ok := m["insights"].([]any)
	if !ok {
		n.logger.Warn("personalized_insights has no insights list, dropping it")
		return nil
	}
	out := &models.PersonalizedInsights{Insights: []models.PersonalizedInsight{}}
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			n.logger.Warn("personalized insight is not an object, dropping it", zap.Int("index", i))
			continue
		}
		msg := asString(entry["message"])
		if msg == "" {
			n.logger.Warn("personalized insight has no message, dropping it", zap.Int("index", i))
			continue
		}
		typ := asString(entry["type"])
		if !insightTypes[typ] {
			n.logger.Warn("personalized insight has an unknown type", zap.Int("index", i), zap.String("type", typ))
		}
		out.Insights = append(out.Insights, models.PersonalizedInsight{
			Type:    typ,
			Message: msg,
		})
	}
	if len(out.Insights) != len(insightTypes) {
		n.logger.Warn("unexpected number of personalized insights", zap.Int("count", len(out.Insights)))
	}
	return out
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
	}
	return ""
}

// stringList keeps the string items of a list. A bare string becomes a
// one-element list.
func stringList(v any) []string {
	out := []string{}
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		if s := strings.TrimSpace(val); s != "" {
			out = append(out, s)
		}
	}
	return out
}

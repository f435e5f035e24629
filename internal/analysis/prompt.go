package analysis

import (
	"fmt"
	"strings"
)

type insightField struct {
	Key         string
	Description string
}

// GutInsightFields are the keys the model must fill under "gut_insights".
var GutInsightFields = []insightField{
	{"digestive_ease", "How easy or hard this meal is to digest (e.g. 'hard to digest due to heavy oils' or 'easy to digest with gentle ingredients')"},
	{"fiber_content", "Whether fiber is adequate (e.g. 'good fiber from whole grains' or 'lacking fiber, low in plant matter')"},
	{"microbiome_impact", "Effect on gut bacteria (e.g. 'supports good bacteria with prebiotics' or 'processed ingredients may harm the microbiome')"},
	{"inflammatory_potential", "Inflammation risk (e.g. 'low inflammatory risk' or 'high in sugar and processed fats')"},
	{"hydration_effect", "Effect on hydration (e.g. 'hydrating with fresh vegetables' or 'dehydrating due to high sodium')"},
	{"probiotic_prebiotic_quality", "Presence of foods that feed beneficial bacteria (e.g. 'contains probiotic-rich yogurt' or 'no probiotic/prebiotic content detected')"},
	{"gut_reactivity_triggers", "Common gut triggers (e.g. 'contains lactose/gluten' or 'no common triggers identified')"},
}

// MentalInsightFields are the keys the model must fill under "mental_insights".
var MentalInsightFields = []insightField{
	{"brain_fuel_quality", "Carbohydrate type and brain fuel (e.g. 'complex carbs provide steady energy' or 'simple sugars cause energy spikes')"},
	{"neuroinflammation_risk", "Brain inflammation risk (e.g. 'low risk with healthy fats' or 'processed fats may cause neuroinflammation')"},
	{"mood_stability", "Mood and serotonin support (e.g. 'tryptophan and B vitamins support mood stability' or 'lacks mood-supportive nutrients')"},
	{"stimulant_load", "Caffeine or stimulant content (e.g. 'contains caffeine' or 'no stimulants detected')"},
	{"energy_sustainability", "Energy pattern (e.g. 'sustained energy without crashes' or 'may cause spikes and crashes')"},
	{"cognitive_nutrients", "Brain-supporting nutrients (e.g. 'rich in omega-3s and antioxidants' or 'lacks cognitive-supporting nutrients')"},
	{"hydration_oxygen_flow", "Mental clarity via hydration (e.g. 'supports hydration and oxygen flow' or 'dehydrating, may reduce clarity')"},
}

// ScoreFields are the integer fields constrained to 0..100.
var ScoreFields = []string{
	"mood_score",
	"mental_clarity_score",
	"energy_score",
	"digestion_score",
	"gut_score",
	"mental_score",
	"overall_score",
}

func writeInsightBlock(b *strings.Builder, name string, fields []insightField) {
	fmt.Fprintf(b, "  %q: {\n", name)
	for i, f := range fields {
		sep := ","
		if i == len(fields)-1 {
			sep = ""
		}
		fmt.Fprintf(b, "    %q: %q%s\n", f.Key, f.Description, sep)
	}
	b.WriteString("  },\n")
}

// SystemPrompt is the fixed instruction sent with every meal image. It spells
// out the full JSON document the model has to return.
func SystemPrompt() string {
	var b strings.Builder

	b.WriteString("You are a nutrition assistant specialized in gut health and cognitive performance. ")
	b.WriteString("Analyze the meal image and return ONLY a valid JSON object with this exact structure:\n\n{\n")
	b.WriteString(`  "title": "Short descriptive meal title",` + "\n")
	b.WriteString(`  "detected_ingredients": ["4-8 main visible ingredients as simple names such as 'Salmon', 'Quinoa', 'Broccoli', 'Olive Oil'. Only list what you can actually see."],` + "\n")
	for _, f := range ScoreFields[:4] {
		fmt.Fprintf(&b, "  %q: 0-100,\n", f)
	}
	writeInsightBlock(&b, "gut_insights", GutInsightFields)
	writeInsightBlock(&b, "mental_insights", MentalInsightFields)
	for _, f := range ScoreFields[4:] {
		fmt.Fprintf(&b, "  %q: 0-100,\n", f)
	}
	b.WriteString(`  "short_verdict": "One sentence summary",` + "\n")
	b.WriteString(`  "reasons": ["3-5 detailed bullet points explaining the scores"],` + "\n")
	b.WriteString(`  "alternatives": ["1-3 healthier meal alternatives that improve both gut and mind"],` + "\n")
	b.WriteString(`  "personalized_insights": {` + "\n")
	b.WriteString(`    "insights": [` + "\n")
	b.WriteString(`      { "type": "Gut", "message": "..." },` + "\n")
	b.WriteString(`      { "type": "Mind", "message": "..." },` + "\n")
	b.WriteString(`      { "type": "Balance", "message": "..." }` + "\n")
	b.WriteString("    ]\n  }\n}\n\n")

	b.WriteString("CRITICAL RULES:\n")
	b.WriteString("1. Output ONLY the JSON object. No markdown, no backticks, no explanation. Start with { and end with }.\n")
	b.WriteString("2. detected_ingredients must be a JSON array of 4-8 ingredients you can see in the image. Do not invent ingredients.\n")
	b.WriteString("3. Be specific and concrete in all insights.\n")
	b.WriteString("4. All scores must be integers between 0 and 100.\n")
	b.WriteString("5. personalized_insights must contain exactly 3 short insights (at most 2 sentences each), written in second person (\"you\"), ")
	b.WriteString("naming actual ingredients or nutrients and giving cause and effect: one \"Gut\" insight, one \"Mind\" insight, ")
	b.WriteString("and one \"Balance\" insight connecting the two.")

	return b.String()
}

// UserPrompt accompanies the image in the user turn.
func UserPrompt() string {
	return `Analyze this meal image carefully. First identify all visible ingredients, then return the complete JSON analysis with every required field, including detected_ingredients as an array of ingredient names.

For personalized_insights write 3 insights of at most 2 sentences each:
- SPECIFIC: mention actual ingredients or nutrients (e.g. "avocado", "magnesium", "fiber")
- INTERESTING: explain cause and effect
- PERSONAL: address the reader as "you"
- one "Gut" insight (digestion/inflammation), one "Mind" insight (focus/mood), one "Balance" insight (how gut and mind connect)

Examples:
1. "The probiotics in your kimchi may help rebalance your gut flora, supporting smoother digestion after meals."
2. "The healthy fats in your salmon provide omega-3s that may boost your mental clarity today."
3. "Because your meal had low fiber, your blood sugar could spike later, which might make your mood dip by afternoon."`
}

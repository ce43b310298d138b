package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/NutriVision/internal/locale"
	"github.com/Rorical/NutriVision/internal/nutrition"
	"github.com/Rorical/NutriVision/ui/styles"
)

var en = locale.Lookup("en")

func sampleResult() *nutrition.AnalysisResult {
	return &nutrition.AnalysisResult{
		StepByStepReasoning: []string{"Plate holds rice", "Chicken breast"},
		FoodItems: []nutrition.FoodItem{
			{Name: "Rice", PortionEstimate: "1 cup", Calories: 200, ConfidenceScore: 0.9,
				Macronutrients: &nutrition.Macronutrients{Protein: "4g", Carbs: "45g", Fat: "0g"}},
			{Name: "Chicken", PortionEstimate: "150g", Calories: 300, ConfidenceScore: 0.85},
			{Name: "Salad", PortionEstimate: "1 bowl", Calories: 120, ConfidenceScore: 0.6},
		},
		TotalCalories:      620,
		OverallConfidence:  0.82,
		UncertaintyFactors: []string{"Hidden oil"},
		HealthTips:         []string{"Add fiber"},
	}
}

func TestConfidenceLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, en.HighAccuracy},
		{0.81, en.HighAccuracy},
		{0.8, en.MediumAccuracy},
		{0.51, en.MediumAccuracy},
		{0.5, en.LowAccuracy},
		{0, en.LowAccuracy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceLabel(en, tt.score), "score %v", tt.score)
	}
}

func TestOverallColor(t *testing.T) {
	assert.Equal(t, styles.Primary, OverallColor(0.71))
	assert.Equal(t, styles.Amber, OverallColor(0.7))
}

func TestPercentAndKcal(t *testing.T) {
	assert.Equal(t, "82%", Percent(0.82))
	assert.Equal(t, "150%", Percent(1.5))
	assert.Equal(t, "620 kcal", Kcal(620))
}

func TestBarClampsFraction(t *testing.T) {
	assert.Equal(t, 10, strings.Count(Bar(2, 10, styles.Primary), "█"))
	assert.Equal(t, 10, strings.Count(Bar(-1, 10, styles.Primary), "░"))
	assert.Equal(t, 5, strings.Count(Bar(0.5, 10, styles.Primary), "█"))
}

func TestRenderResult(t *testing.T) {
	out := RenderResult(en, sampleResult(), false, 100)

	assert.Contains(t, out, "620 kcal")
	assert.Contains(t, out, "82%")
	assert.Contains(t, out, "(3 items)")
	for _, name := range []string{"Rice", "Chicken", "Salad"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "45g")
	assert.Contains(t, out, "Hidden oil")
	assert.Contains(t, out, "Add fiber")
	assert.Contains(t, out, en.ShowReasoning)
	assert.NotContains(t, out, "Plate holds rice")
}

func TestRenderResultExpandedReasoning(t *testing.T) {
	out := RenderResult(en, sampleResult(), true, 100)

	assert.Contains(t, out, en.HideReasoning)
	assert.Contains(t, out, "1. Plate holds rice")
	assert.Contains(t, out, "2. Chicken breast")
}

func TestRenderResultWithoutItems(t *testing.T) {
	out := RenderResult(en, &nutrition.AnalysisResult{}, false, 80)

	assert.Contains(t, out, "0 kcal")
	assert.NotContains(t, out, en.Breakdown)
	assert.NotContains(t, out, en.AttentionPoints)
}

func TestRenderAnalyzingShowsSteps(t *testing.T) {
	out := RenderAnalyzing(en, "*", 80)
	assert.Contains(t, out, en.AnalyzingTitle)
	for _, step := range en.AnalyzingSteps {
		assert.Contains(t, out, step)
	}
}

func TestRenderFailure(t *testing.T) {
	out := RenderFailure(en, en.AnalysisFail, 120)
	assert.Contains(t, out, en.FailureTitle)
	assert.Contains(t, out, en.TryAgain)
}

func TestRenderIdle(t *testing.T) {
	out := RenderIdle(en, "› meal.jpg", en.NotAnImage, true, 80)
	assert.Contains(t, out, en.Formats)
	assert.Contains(t, out, en.NotAnImage)
	assert.Contains(t, out, en.LoadingImageHint)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Rice", truncate("Rice", 10))
	assert.Equal(t, "Feij…", truncate("Feijoada", 5))
}

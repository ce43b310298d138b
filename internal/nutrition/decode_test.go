package nutrition

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mealPayload = `{
	"step_by_step_reasoning": ["Plate with rice, beans and steak", "Portions compared to the fork"],
	"food_items": [
		{"name": "Arroz branco", "portion_estimate": "1 xícara", "calories": 205, "confidence_score": 0.9,
		 "macronutrients": {"protein": "4g", "carbs": "45g", "fat": "0.4g"}},
		{"name": "Feijão", "portion_estimate": "1 concha", "calories": 115.5, "confidence_score": 0.8},
		{"name": "Bife", "portion_estimate": "120g", "calories": 299.5, "confidence_score": 0.7}
	],
	"total_calories": 620,
	"overall_confidence": 0.82,
	"uncertainty_factors": ["Óleo escondido"],
	"health_tips": ["Adicione salada"]
}`

func TestDecodeResultVerbatim(t *testing.T) {
	result, err := DecodeResult(mealPayload)
	require.NoError(t, err)

	assert.Equal(t, 620.0, result.TotalCalories)
	assert.Equal(t, 0.82, result.OverallConfidence)
	require.Len(t, result.FoodItems, 3)
	assert.Equal(t, "Arroz branco", result.FoodItems[0].Name)
	assert.Equal(t, "1 xícara", result.FoodItems[0].PortionEstimate)
	require.NotNil(t, result.FoodItems[0].Macronutrients)
	assert.Equal(t, "45g", result.FoodItems[0].Macronutrients.Carbs)
	assert.Nil(t, result.FoodItems[1].Macronutrients)
	assert.Equal(t, 115.5, result.FoodItems[1].Calories)
	assert.Equal(t, []string{"Plate with rice, beans and steak", "Portions compared to the fork"}, result.StepByStepReasoning)
	assert.Equal(t, []string{"Óleo escondido"}, result.UncertaintyFactors)
	assert.Equal(t, []string{"Adicione salada"}, result.HealthTips)
}

func TestDecodeResultPassesOutOfRangeValuesThrough(t *testing.T) {
	payload := `{"step_by_step_reasoning":[],"food_items":[{"name":"x","portion_estimate":"?","calories":-10,"confidence_score":1.7}],
		"total_calories":-10,"overall_confidence":3,"uncertainty_factors":[],"health_tips":[]}`

	result, err := DecodeResult(payload)
	require.NoError(t, err)
	assert.Equal(t, -10.0, result.TotalCalories)
	assert.Equal(t, 3.0, result.OverallConfidence)
	assert.Equal(t, 1.7, result.FoodItems[0].ConfidenceScore)
}

func TestDecodeResultRejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		schemaErr bool
	}{
		{"not json", "Sorry, I cannot see any food.", false},
		{"truncated", `{"food_items": [`, false},
		{"json array", `[1, 2, 3]`, false},
		{"missing total", `{"step_by_step_reasoning":[],"food_items":[],"overall_confidence":0.5,"uncertainty_factors":[],"health_tips":[]}`, true},
		{"null field", `{"step_by_step_reasoning":null,"food_items":[],"total_calories":1,"overall_confidence":0.5,"uncertainty_factors":[],"health_tips":[]}`, true},
		{"item missing calories", `{"step_by_step_reasoning":[],"food_items":[{"name":"a","portion_estimate":"b","confidence_score":1}],"total_calories":1,"overall_confidence":0.5,"uncertainty_factors":[],"health_tips":[]}`, true},
		{"wrong type", `{"step_by_step_reasoning":[],"food_items":[],"total_calories":"lots","overall_confidence":0.5,"uncertainty_factors":[],"health_tips":[]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DecodeResult(tt.payload)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.schemaErr, errors.Is(err, ErrSchemaMismatch))
		})
	}
}

func TestResponseSchemaRequiredFields(t *testing.T) {
	schema := ResponseSchema("English")

	assert.ElementsMatch(t, RequiredResultFields(), schema.Required)
	items := schema.Properties["food_items"].Items
	require.NotNil(t, items)
	assert.ElementsMatch(t, []string{"name", "portion_estimate", "calories", "confidence_score"}, items.Required)
	assert.NotContains(t, items.Required, "macronutrients")
	assert.Contains(t, items.Properties, "macronutrients")

	raw, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "between 0 and 1")
	assert.Contains(t, string(raw), "Write it in English.")
}

func TestNewAnalysisRequest(t *testing.T) {
	img := MealImage{Data: []byte{0xff, 0xd8}, MIMEType: "image/jpeg"}
	req := NewAnalysisRequest(img, "Brazilian Portuguese")

	assert.Equal(t, img, req.Image)
	assert.Equal(t, DefaultTemperature, req.Temperature)
	assert.Contains(t, req.Instruction, "Brazilian Portuguese")
	assert.Contains(t, req.Instruction, "JSON")
}

func TestSanitized(t *testing.T) {
	original := &AnalysisResult{
		FoodItems: []FoodItem{
			{Name: "a", Calories: -5, ConfidenceScore: 1.4, Macronutrients: &Macronutrients{Protein: "1g"}},
			{Name: "b", Calories: 80, ConfidenceScore: -0.2},
		},
		TotalCalories:     -1,
		OverallConfidence: 0.5,
	}

	clean := original.Sanitized()

	assert.Equal(t, 0.0, clean.TotalCalories)
	assert.Equal(t, 0.5, clean.OverallConfidence)
	assert.Equal(t, 0.0, clean.FoodItems[0].Calories)
	assert.Equal(t, 1.0, clean.FoodItems[0].ConfidenceScore)
	assert.Equal(t, 0.0, clean.FoodItems[1].ConfidenceScore)
	assert.Equal(t, 80.0, clean.FoodItems[1].Calories)

	clean.FoodItems[0].Macronutrients.Protein = "changed"
	assert.Equal(t, -5.0, original.FoodItems[0].Calories)
	assert.Equal(t, "1g", original.FoodItems[0].Macronutrients.Protein)
}

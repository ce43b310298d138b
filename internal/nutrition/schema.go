package nutrition

import (
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// SchemaVersion identifies the revision of ResponseSchema and AnalysisResult.
// Bump it whenever either one changes; they only ever change together.
const SchemaVersion = "2"

// SchemaName is the name the schema is registered under in the request.
const SchemaName = "meal_analysis"

// DefaultTemperature keeps the model factual rather than creative.
const DefaultTemperature float32 = 0.2

var (
	resultFields = []string{
		"step_by_step_reasoning",
		"food_items",
		"total_calories",
		"overall_confidence",
		"uncertainty_factors",
		"health_tips",
	}
	itemFields = []string{"name", "portion_estimate", "calories", "confidence_score"}
)

// RequiredResultFields returns the top-level fields the model must produce.
func RequiredResultFields() []string {
	return append([]string(nil), resultFields...)
}

// RequiredItemFields returns the fields every food item must carry.
func RequiredItemFields() []string {
	return append([]string(nil), itemFields...)
}

// ResponseSchema describes AnalysisResult to the model. Text values are to be
// written in language; field names stay as declared.
func ResponseSchema(language string) jsonschema.Definition {
	text := func(desc string) string {
		return fmt.Sprintf("%s Write it in %s.", desc, language)
	}
	list := func(desc string) jsonschema.Definition {
		return jsonschema.Definition{
			Type:        jsonschema.Array,
			Items:       &jsonschema.Definition{Type: jsonschema.String},
			Description: text(desc),
		}
	}

	item := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"name": {
				Type:        jsonschema.String,
				Description: text("Name of the food item."),
			},
			"portion_estimate": {
				Type:        jsonschema.String,
				Description: text("Estimated portion, e.g. '1 cup', '150g', 'palm-sized'."),
			},
			"calories": {
				Type:        jsonschema.Number,
				Description: "Estimated kilocalories for this portion. Zero or greater.",
			},
			"confidence_score": {
				Type:        jsonschema.Number,
				Description: "Confidence in this item, between 0 and 1.",
			},
			"macronutrients": {
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"protein": {Type: jsonschema.String},
					"carbs":   {Type: jsonschema.String},
					"fat":     {Type: jsonschema.String},
				},
				Description: "Estimated protein, carbohydrate and fat amounts with units, e.g. '12g'.",
			},
		},
		Required: RequiredItemFields(),
	}

	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"step_by_step_reasoning": list("Logical steps taken to identify the foods and estimate the portions."),
			"food_items": {
				Type:  jsonschema.Array,
				Items: &item,
			},
			"total_calories": {
				Type:        jsonschema.Number,
				Description: "Sum of the estimated kilocalories of every item. Zero or greater.",
			},
			"overall_confidence": {
				Type:        jsonschema.Number,
				Description: "Confidence in the whole estimate, between 0 and 1.",
			},
			"uncertainty_factors": list("Factors that may affect accuracy, e.g. hidden oil or sauce depth."),
			"health_tips":         list("Short actionable advice based on the meal."),
		},
		Required: RequiredResultFields(),
	}
}

// Instruction is the task description sent next to the photo.
func Instruction(language string) string {
	return fmt.Sprintf(`Act as an expert mobile product designer and computer vision engineer specialized in food recognition.

Your goal is to produce highly accurate calorie estimates for any dish in the image.

Requirements:
1) Clearly identify every food item (in %[1]s).
2) Estimate portion sizes using visual cues.
3) Recall typical nutritional values.
4) Provide confidence scores between 0 and 1.
5) Highlight uncertainties.
6) Include a macronutrient estimate (protein, carbohydrates, fat) when possible.

Analyze the image and return a strictly structured JSON response. Keep the JSON keys in English exactly as in the schema, but write every text value in %[1]s.`, language)
}

// AnalysisRequest is everything one call to the model carries.
type AnalysisRequest struct {
	Image       MealImage
	Instruction string
	Schema      jsonschema.Definition
	Temperature float32
}

// NewAnalysisRequest builds the request for image with text localized to
// language.
func NewAnalysisRequest(image MealImage, language string) AnalysisRequest {
	return AnalysisRequest{
		Image:       image,
		Instruction: Instruction(language),
		Schema:      ResponseSchema(language),
		Temperature: DefaultTemperature,
	}
}

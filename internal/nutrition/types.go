// Package nutrition defines the contract negotiated with the external model:
// the shape of a meal analysis, the JSON schema the model is constrained to,
// and the instruction sent alongside the photo.
package nutrition

// MealImage is an encoded photo of a meal plus its declared media type.
type MealImage struct {
	Data     []byte
	MIMEType string
}

// Empty reports whether the image carries no bytes.
func (m MealImage) Empty() bool {
	return len(m.Data) == 0
}

// Macronutrients are free-form amounts as reported by the model ("25g").
type Macronutrients struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fat     string `json:"fat"`
}

// FoodItem is one food identified on the plate.
type FoodItem struct {
	Name            string          `json:"name"`
	PortionEstimate string          `json:"portion_estimate"`
	Calories        float64         `json:"calories"`
	ConfidenceScore float64         `json:"confidence_score"`
	Macronutrients  *Macronutrients `json:"macronutrients,omitempty"`
}

// AnalysisResult is the structured estimate for a whole meal. Values are
// exactly what the model returned; see Sanitized for a clamped copy.
type AnalysisResult struct {
	StepByStepReasoning []string   `json:"step_by_step_reasoning"`
	FoodItems           []FoodItem `json:"food_items"`
	TotalCalories       float64    `json:"total_calories"`
	OverallConfidence   float64    `json:"overall_confidence"`
	UncertaintyFactors  []string   `json:"uncertainty_factors"`
	HealthTips          []string   `json:"health_tips"`
}

// Sanitized returns a copy with negative calories raised to zero and every
// confidence clamped to [0,1]. The receiver is left untouched.
func (r *AnalysisResult) Sanitized() *AnalysisResult {
	out := *r
	out.StepByStepReasoning = append([]string(nil), r.StepByStepReasoning...)
	out.UncertaintyFactors = append([]string(nil), r.UncertaintyFactors...)
	out.HealthTips = append([]string(nil), r.HealthTips...)
	out.FoodItems = make([]FoodItem, len(r.FoodItems))
	for i, item := range r.FoodItems {
		item.Calories = nonNegative(item.Calories)
		item.ConfidenceScore = unit(item.ConfidenceScore)
		if item.Macronutrients != nil {
			m := *item.Macronutrients
			item.Macronutrients = &m
		}
		out.FoodItems[i] = item
	}
	out.TotalCalories = nonNegative(r.TotalCalories)
	out.OverallConfidence = unit(r.OverallConfidence)
	return &out
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func unit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/NutriVision/internal/config"
	"github.com/Rorical/NutriVision/internal/eventbus"
	"github.com/Rorical/NutriVision/internal/models"
	"github.com/Rorical/NutriVision/internal/nutrition"
)

func TestAwaitOutcomeSkipsIntermediateStates(t *testing.T) {
	eb := eventbus.NewEventBusWithCapacity(8)
	result := &nutrition.AnalysisResult{TotalCalories: 620}

	require.NoError(t, eb.SendToUI(eventbus.StateUpdateEvent{Snapshot: models.Snapshot{State: models.Idle{}}}))
	require.NoError(t, eb.SendToUI(eventbus.NoticeEvent{Message: "busy"}))
	require.NoError(t, eb.SendToUI(eventbus.StateUpdateEvent{Snapshot: models.Snapshot{State: models.Analyzing{}, Revision: 1}}))
	require.NoError(t, eb.SendToUI(eventbus.StateUpdateEvent{Snapshot: models.Snapshot{State: models.Result{Result: result}, Revision: 2}}))

	snapshot, err := awaitOutcome(context.Background(), eb)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snapshot.Revision)
	assert.Same(t, result, snapshot.State.(models.Result).Result)
}

func TestAwaitOutcomeHonorsContext(t *testing.T) {
	eb := eventbus.NewEventBusWithCapacity(1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := awaitOutcome(ctx, eb)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWriteJSONKeepsSchemaFieldNames(t *testing.T) {
	var buf bytes.Buffer
	state := models.Result{Result: &nutrition.AnalysisResult{
		FoodItems:         []nutrition.FoodItem{{Name: "Rice", PortionEstimate: "1 cup", Calories: 200, ConfidenceScore: 0.9}},
		TotalCalories:     200,
		OverallConfidence: 0.9,
	}}
	require.NoError(t, writeJSON(&buf, state))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	for _, field := range nutrition.RequiredResultFields() {
		assert.Contains(t, decoded, field)
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateName("work"))
	assert.Error(t, validateName(" "))
	assert.Error(t, validateName("my profile"))

	assert.NoError(t, validateTemperature("0.2"))
	assert.Error(t, validateTemperature("3"))
	assert.Error(t, validateTemperature("warm"))

	assert.NoError(t, validateNonNegativeInt("0"))
	assert.NoError(t, validateNonNegativeInt("1024"))
	assert.Error(t, validateNonNegativeInt("-1"))
	assert.Error(t, validateNonNegativeInt("1.5"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "none", timeoutLabel(0))
	assert.Equal(t, "30s", timeoutLabel(30))
	assert.Equal(t, "pt-BR", orDefault("", "pt-BR"))
	assert.Equal(t, 1, indexOf([]string{"pt-BR", "en"}, "EN"))
	assert.Equal(t, -1, indexOf([]string{"pt-BR", "en"}, "fr"))
}

func TestNewAnalyzerFromProfile(t *testing.T) {
	cfg := &config.Config{Profiles: map[string]config.Profile{"default": {APIKey: "sk-test", Language: "en"}}}
	require.NoError(t, cfg.Use("default"))
	assert.NotNil(t, newAnalyzer(cfg, nil))
}

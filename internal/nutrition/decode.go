package nutrition

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaMismatch is returned when a payload parses as JSON but does not
// carry the fields the schema requires.
var ErrSchemaMismatch = errors.New("payload does not match the analysis schema")

// DecodeResult parses a model payload into an AnalysisResult. Numbers are
// taken verbatim.
func DecodeResult(payload string) (*AnalysisResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if missing := missingFields(fields, resultFields); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(fields["food_items"], &items); err != nil {
		return nil, fmt.Errorf("%w: food_items: %v", ErrSchemaMismatch, err)
	}
	for i, item := range items {
		if missing := missingFields(item, itemFields); len(missing) > 0 {
			return nil, fmt.Errorf("%w: food_items[%d] missing %s", ErrSchemaMismatch, i, strings.Join(missing, ", "))
		}
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return &result, nil
}

func missingFields(obj map[string]json.RawMessage, required []string) []string {
	var missing []string
	for _, name := range required {
		raw, ok := obj[name]
		if !ok || string(raw) == "null" {
			missing = append(missing, name)
		}
	}
	return missing
}

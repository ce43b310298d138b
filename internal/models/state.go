package models

import "github.com/Rorical/NutriVision/internal/nutrition"

// State is the application state. It is always exactly one of Idle,
// Analyzing, Result or Failed.
type State interface {
	state()
}

// Idle holds no image, no result and no error.
type Idle struct{}

// Analyzing means an analysis of Image is in flight.
type Analyzing struct {
	Image nutrition.MealImage
}

// Result holds a finished analysis of Image.
type Result struct {
	Image  nutrition.MealImage
	Result *nutrition.AnalysisResult
}

// Failed holds the user-facing message of a failed analysis of Image.
type Failed struct {
	Image   nutrition.MealImage
	Message string
}

func (Idle) state() {}
func (Analyzing) state() {}
func (Result) state() {}
func (Failed) state() {}

// Snapshot is a consistent view of the state. Revision grows with every
// applied transition.
type Snapshot struct {
	State    State
	Revision uint64
}

// PhaseName is a short label for logs.
func PhaseName(s State) string {
	switch s.(type) {
	case Idle:
		return "idle"
	case Analyzing:
		return "analyzing"
	case Result:
		return "result"
	case Failed:
		return "failed"
	}
	return "unknown"
}

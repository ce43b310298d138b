package core

import (
	"errors"
	"sync"

	"github.com/Rorical/NutriVision/internal/models"
	"github.com/Rorical/NutriVision/internal/nutrition"
)

var (
	// ErrBusy is returned when an image is submitted while another one is
	// still being analyzed.
	ErrBusy = errors.New("an analysis is already in progress")
	// ErrNoImage is returned when the submitted image has no bytes.
	ErrNoImage = errors.New("no image to analyze")
	// ErrNotIdle is returned when an image is submitted while a result or
	// failure is still on screen. Reset first.
	ErrNotIdle = errors.New("reset before submitting another image")
)

// Machine is the application state machine:
//
//	Idle --Submit--> Analyzing --Succeed--> Result
//	                           --Fail-----> Failed
//	any --Reset--> Idle
//
// Every Submit and Reset starts a new generation. Completions carry the
// generation they were started with and are dropped when it is no longer
// current, so a call that outlives a reset can never overwrite newer state.
type Machine struct {
	mu             sync.RWMutex
	state          models.State
	generation     uint64
	revision       uint64
	failureMessage string
}

// NewMachine creates a machine in Idle. failureMessage is what Failed
// carries for every kind of analysis failure.
func NewMachine(failureMessage string) *Machine {
	return &Machine{
		state:          models.Idle{},
		failureMessage: failureMessage,
	}
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() models.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.Snapshot{State: m.state, Revision: m.revision}
}

// Busy reports whether an analysis is in flight.
func (m *Machine) Busy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, analyzing := m.state.(models.Analyzing)
	return analyzing
}

// Submit moves to Analyzing{image} and returns the generation the caller
// must hand back to Succeed or Fail. Only Idle accepts a submission.
func (m *Machine) Submit(image nutrition.MealImage) (uint64, error) {
	if image.Empty() {
		return 0, ErrNoImage
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state.(type) {
	case models.Analyzing:
		return 0, ErrBusy
	case models.Result, models.Failed:
		return 0, ErrNotIdle
	}

	m.generation++
	m.apply(models.Analyzing{Image: image})
	return m.generation, nil
}

// Succeed moves Analyzing{image} to Result{image, result}. It reports false
// and changes nothing when generation is stale.
func (m *Machine) Succeed(generation uint64, result *nutrition.AnalysisResult) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.current(generation)
	if !ok {
		return false
	}
	m.apply(models.Result{Image: current.Image, Result: result})
	return true
}

// Fail moves Analyzing{image} to Failed{image, message}. It reports false
// and changes nothing when generation is stale.
func (m *Machine) Fail(generation uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.current(generation)
	if !ok {
		return false
	}
	m.apply(models.Failed{Image: current.Image, Message: m.failureMessage})
	return true
}

// Reset returns to Idle from any state. An analysis still in flight becomes
// stale.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	m.apply(models.Idle{})
}

func (m *Machine) current(generation uint64) (models.Analyzing, bool) {
	analyzing, ok := m.state.(models.Analyzing)
	if !ok || generation != m.generation {
		return models.Analyzing{}, false
	}
	return analyzing, true
}

// apply must be called with mu held.
func (m *Machine) apply(next models.State) {
	m.state = next
	m.revision++
}

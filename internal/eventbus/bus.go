package eventbus

import (
	"context"
	"errors"
	"time"

	"github.com/Rorical/NutriVision/internal/models"
	"github.com/Rorical/NutriVision/internal/nutrition"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// SubmitImageEvent - UI asks core to analyze a meal photo
type SubmitImageEvent struct {
	Image nutrition.MealImage
}

func (e SubmitImageEvent) UIEvent() {}

// ResetEvent - UI asks core to drop the current image, result or error
type ResetEvent struct{}

func (e ResetEvent) UIEvent() {}

// StateUpdateEvent - Core pushes a state snapshot to UI
type StateUpdateEvent struct {
	Snapshot models.Snapshot
}

func (e StateUpdateEvent) CoreEvent() {}

// NoticeEvent - Core reports a rejected request without changing state
type NoticeEvent struct {
	Message string
}

func (e NoticeEvent) CoreEvent() {}

// ErrBufferFull is returned when the receiving side is not draining events.
var ErrBufferFull = errors.New("event buffer is full")

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

// EventBus carries events between UI and Core. Sends never block.
type EventBus struct {
	uiToCore      chan UIEvent
	coreToUI      chan CoreEvent
	errorCallback func(EventBusError)
}

func NewEventBus() *EventBus {
	return NewEventBusWithCapacity(100)
}

func NewEventBusWithCapacity(capacity int) *EventBus {
	return &EventBus{
		uiToCore: make(chan UIEvent, capacity),
		coreToUI: make(chan CoreEvent, capacity),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	if eb.errorCallback != nil {
		eb.errorCallback(EventBusError{
			Operation: operation,
			Err:       err,
			Timestamp: time.Now(),
		})
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	select {
	case eb.uiToCore <- event:
		return nil
	default:
		eb.reportError("SendToCore", ErrBufferFull)
		return ErrBufferFull
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	select {
	case eb.coreToUI <- event:
		return nil
	default:
		eb.reportError("SendToUI", ErrBufferFull)
		return ErrBufferFull
	}
}

// SendToUIContext waits for buffer space until ctx is done.
func (eb *EventBus) SendToUIContext(ctx context.Context, event CoreEvent) error {
	select {
	case eb.coreToUI <- event:
		return nil
	default:
	}
	select {
	case eb.coreToUI <- event:
		return nil
	case <-ctx.Done():
		eb.reportError("SendToUIContext", ctx.Err())
		return ctx.Err()
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) Close() {
	close(eb.uiToCore)
	close(eb.coreToUI)
}

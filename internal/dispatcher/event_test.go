package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/NutriVision/internal/eventbus"
	"github.com/Rorical/NutriVision/internal/update"
)

func TestListenForCoreEventsWrapsEvent(t *testing.T) {
	eb := eventbus.NewEventBusWithCapacity(1)
	defer eb.Close()
	d := NewEventDispatcher(eb)
	defer d.Stop()

	assert.NoError(t, eb.SendToUI(eventbus.NoticeEvent{Message: "busy"}))

	msg := d.ListenForCoreEvents()()
	assert.Equal(t, update.CoreEventMsg{Event: eventbus.NoticeEvent{Message: "busy"}}, msg)
}

func TestListenForCoreEventsStopsAfterStop(t *testing.T) {
	eb := eventbus.NewEventBusWithCapacity(1)
	defer eb.Close()
	d := NewEventDispatcher(eb)
	d.Stop()

	assert.Nil(t, d.ListenForCoreEvents()())
}

func TestListenForCoreEventsStopsOnClosedBus(t *testing.T) {
	eb := eventbus.NewEventBusWithCapacity(1)
	d := NewEventDispatcher(eb)
	defer d.Stop()
	eb.Close()

	assert.Nil(t, d.ListenForCoreEvents()())
}

package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/NutriVision/internal/models"
)

func TestSendsAreNonBlocking(t *testing.T) {
	eb := NewEventBusWithCapacity(1)
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(err EventBusError) { reported = append(reported, err) })

	require.NoError(t, eb.SendToCore(ResetEvent{}))
	assert.ErrorIs(t, eb.SendToCore(ResetEvent{}), ErrBufferFull)

	require.NoError(t, eb.SendToUI(NoticeEvent{Message: "a"}))
	assert.ErrorIs(t, eb.SendToUI(NoticeEvent{Message: "b"}), ErrBufferFull)

	require.Len(t, reported, 2)
	assert.Equal(t, "SendToCore", reported[0].Operation)
	assert.Equal(t, "SendToUI: event buffer is full", reported[1].Error())
}

func TestEventsArriveInOrder(t *testing.T) {
	eb := NewEventBusWithCapacity(4)
	defer eb.Close()

	for rev := uint64(1); rev <= 3; rev++ {
		require.NoError(t, eb.SendToUI(StateUpdateEvent{Snapshot: models.Snapshot{State: models.Idle{}, Revision: rev}}))
	}
	for rev := uint64(1); rev <= 3; rev++ {
		ev := (<-eb.CoreToUI()).(StateUpdateEvent)
		assert.Equal(t, rev, ev.Snapshot.Revision)
	}
}

func TestSendToUIContextWaitsForSpace(t *testing.T) {
	eb := NewEventBusWithCapacity(1)
	defer eb.Close()
	require.NoError(t, eb.SendToUI(NoticeEvent{Message: "first"}))

	done := make(chan error, 1)
	go func() { done <- eb.SendToUIContext(context.Background(), NoticeEvent{Message: "second"}) }()

	assert.Equal(t, NoticeEvent{Message: "first"}, <-eb.CoreToUI())
	require.NoError(t, <-done)
	assert.Equal(t, NoticeEvent{Message: "second"}, <-eb.CoreToUI())
}

func TestSendToUIContextGivesUpOnCancel(t *testing.T) {
	eb := NewEventBusWithCapacity(1)
	defer eb.Close()
	require.NoError(t, eb.SendToUI(NoticeEvent{Message: "first"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, eb.SendToUIContext(ctx, NoticeEvent{Message: "second"}), context.Canceled)
}

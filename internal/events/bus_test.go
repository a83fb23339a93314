package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/techsolutions/storefront/internal/events"
)

func TestEmitFansOutInOrder(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	bus := &events.Bus{Now: func() time.Time { return fixed }}

	var seen []string
	bus.Subscribe(events.NotifierFunc(func(_ context.Context, ev events.Event) error {
		seen = append(seen, "first:"+ev.Topic)
		return nil
	}))
	bus.Subscribe(events.NotifierFunc(func(_ context.Context, ev events.Event) error {
		seen = append(seen, "second:"+ev.Topic)
		return nil
	}))

	ev, err := bus.Emit(context.Background(), events.TopicCartUpdated, "cart-1", map[string]any{"itemCount": 3})
	require.NoError(t, err)
	require.Equal(t, []string{"first:cart.updated", "second:cart.updated"}, seen)
	require.Equal(t, fixed, ev.OccurredAt)
	require.NotEmpty(t, ev.ID)

	var payload map[string]int
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	require.Equal(t, 3, payload["itemCount"])
}

func TestEmitValidatesInput(t *testing.T) {
	bus := &events.Bus{}
	_, err := bus.Emit(context.Background(), "", "cart-1", nil)
	require.Error(t, err)
	_, err = bus.Emit(context.Background(), events.TopicCartUpdated, "", nil)
	require.Error(t, err)
	_, err = bus.Emit(context.Background(), events.TopicCartUpdated, "cart-1", json.RawMessage("{broken"))
	require.Error(t, err)
}

func TestEmitJoinsNotifierErrorsWithoutStopping(t *testing.T) {
	bus := &events.Bus{}
	boom := errors.New("boom")
	bus.Subscribe(events.NotifierFunc(func(context.Context, events.Event) error { return boom }))

	delivered := false
	bus.Subscribe(events.NotifierFunc(func(context.Context, events.Event) error {
		delivered = true
		return nil
	}))

	_, err := bus.Emit(context.Background(), events.TopicCartCleared, "cart-1", nil)
	require.ErrorIs(t, err, boom)
	require.True(t, delivered)
}

package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-register/internal/events"
)

type captureNotifier struct {
	events []events.Event
	err    error
}

func (c *captureNotifier) Notify(_ context.Context, event events.Event) error {
	c.events = append(c.events, event)
	return c.err
}

func TestEmitRecordsAndNotifies(t *testing.T) {
	notifier := &captureNotifier{}
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	bus := &events.Bus{
		Notifiers: []events.Notifier{notifier},
		Now:       func() time.Time { return fixed },
	}

	payload := map[string]any{"productId": int64(1), "units": 2}
	event, err := bus.Emit(context.Background(), events.TopicPurchaseCompleted, payload)
	require.NoError(t, err)
	require.Equal(t, events.TopicPurchaseCompleted, event.Topic)
	require.Equal(t, fixed, event.OccurredAt)
	require.JSONEq(t, `{"productId":1,"units":2}`, string(event.Payload))

	require.Len(t, notifier.events, 1)
	require.Equal(t, event.ID, notifier.events[0].ID)

	history := bus.History()
	require.Len(t, history, 1)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(history[0].Payload, &decoded))
	require.Equal(t, float64(2), decoded["units"])
}

func TestEmitRequiresTopic(t *testing.T) {
	bus := &events.Bus{}
	_, err := bus.Emit(context.Background(), "  ", nil)
	require.Error(t, err)
}

func TestEmitRecordsDespiteNotifierFailure(t *testing.T) {
	failing := &captureNotifier{err: errors.New("boom")}
	bus := &events.Bus{Notifiers: []events.Notifier{failing}}

	_, err := bus.Emit(context.Background(), events.TopicStockLow, nil)
	require.Error(t, err)
	require.Len(t, bus.History(), 1)
}

func TestEmitRejectsInvalidJSON(t *testing.T) {
	bus := &events.Bus{}
	_, err := bus.Emit(context.Background(), events.TopicDeliveryReceived, []byte("{not json"))
	require.Error(t, err)
	require.Empty(t, bus.History())
}

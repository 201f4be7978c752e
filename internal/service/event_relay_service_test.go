package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindcare-be/internal/pkg/logger"
	"mindcare-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "domain_events"

func newTestBus(t *testing.T) *gochannel.GoChannel {
	t.Helper()
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func TestEventRelay_ForwardsPublishedEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := newTestBus(t)
	sink := &recordingPublisher{}
	relay := NewEventRelayService(bus, testTopic, sink, logger.NewNop())
	require.NoError(t, relay.Consume(ctx))

	occurredAt := time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)
	publisher := NewPublisherService(testTopic, bus)
	require.NoError(t, publisher.Publish(ctx, events.New(events.AnalysisCompleted, map[string]interface{}{
		"user_id":    "a9f6d0b4-1111-4c1b-9a51-4f3d3c1f0e01",
		"risk_level": "medium",
	}, occurredAt)))

	require.Eventually(t, func() bool { return len(sink.types()) == 1 }, time.Second, 10*time.Millisecond)

	sink.mu.Lock()
	got := sink.events[0]
	sink.mu.Unlock()
	assert.Equal(t, events.AnalysisCompleted, got.EventType())
	assert.True(t, occurredAt.Equal(got.Timestamp()))
	assert.Equal(t, "medium", got.Payload()["risk_level"])
	userID, ok := events.UserID(got)
	assert.True(t, ok)
	assert.Equal(t, "a9f6d0b4-1111-4c1b-9a51-4f3d3c1f0e01", userID)
}

func TestEventRelay_SurvivesBadMessagesAndSinkErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := newTestBus(t)
	sink := &recordingPublisher{err: errors.New("stream unavailable")}
	relay := NewEventRelayService(bus, testTopic, sink, logger.NewNop())
	require.NoError(t, relay.Consume(ctx))

	require.NoError(t, bus.Publish(testTopic, message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	publisher := NewPublisherService(testTopic, bus)
	for i := 0; i < 2; i++ {
		require.NoError(t, publisher.Publish(ctx, events.New(events.MessageExchanged, map[string]interface{}{"n": i}, time.Now())))
	}

	require.Eventually(t, func() bool { return len(sink.types()) == 2 }, time.Second, 10*time.Millisecond)
}

func TestEventRelay_NilSink(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := newTestBus(t)
	relay := NewEventRelayService(bus, testTopic, nil, logger.NewNop())
	require.NoError(t, relay.Consume(ctx))

	assert.NoError(t, NewPublisherService(testTopic, bus).Publish(ctx, events.New(events.MessageExchanged, nil, time.Now())))
}

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name    string
		msg     func() *message.Message
		wantErr bool
	}{
		{
			name: "no event type",
			msg: func() *message.Message {
				return message.NewMessage("1", []byte(`{}`))
			},
			wantErr: true,
		},
		{
			name: "bad payload",
			msg: func() *message.Message {
				m := message.NewMessage("2", []byte(`[`))
				m.Metadata.Set(metadataEventType, events.MessageExchanged)
				return m
			},
			wantErr: true,
		},
		{
			name: "missing timestamp falls back to now",
			msg: func() *message.Message {
				m := message.NewMessage("3", []byte(`{"user_id":"u"}`))
				m.Metadata.Set(metadataEventType, events.SignalsUpdated)
				return m
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := decodeMessage(tt.msg())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, events.SignalsUpdated, event.EventType())
			assert.False(t, event.Timestamp().IsZero())
		})
	}
}

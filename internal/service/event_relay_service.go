package service

import (
	"context"

	"mindcare-be/internal/pkg/logger"
	"mindcare-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventSink receives relayed events. *nats.Publisher implements it.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

// IEventRelayService drains the in-process bus into the external event
// stream consumed by the digest pipeline.
type IEventRelayService interface {
	Consume(ctx context.Context) error
}

type eventRelayService struct {
	subscriber message.Subscriber
	topicName  string
	sink       EventSink
	logger     logger.ILogger
}

// NewEventRelayService builds a relay. A nil sink only logs the events.
func NewEventRelayService(
	subscriber message.Subscriber,
	topicName string,
	sink EventSink,
	log logger.ILogger,
) IEventRelayService {
	return &eventRelayService{
		subscriber: subscriber,
		topicName:  topicName,
		sink:       sink,
		logger:     log,
	}
}

func (rs *eventRelayService) Consume(ctx context.Context) error {
	messages, err := rs.subscriber.Subscribe(ctx, rs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			rs.processMessage(msg)
		}
	}()

	return nil
}

func (rs *eventRelayService) processMessage(msg *message.Message) {
	// Ack in every branch. The bus is best-effort and a redelivery loop
	// would block later events.
	defer msg.Ack()

	event, err := decodeMessage(msg)
	if err != nil {
		rs.logger.Error("EVENTS", "Dropping malformed event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	if rs.sink == nil {
		rs.logger.Debug("EVENTS", "No sink configured, event not relayed", map[string]interface{}{
			"type": event.EventType(),
		})
		return
	}

	if err := rs.sink.Publish(msg.Context(), event); err != nil {
		rs.logger.Warn("EVENTS", "Failed to relay event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return
	}

	rs.logger.Debug("EVENTS", "Event relayed", map[string]interface{}{
		"type": event.EventType(),
	})
}

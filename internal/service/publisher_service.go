package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mindcare-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	metadataEventType  = "event_type"
	metadataOccurredAt = "occurred_at"
)

// IPublisherService puts domain events on the in-process bus.
type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.EventType(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metadataEventType, event.EventType())
	msg.Metadata.Set(metadataOccurredAt, event.Timestamp().UTC().Format(time.RFC3339Nano))
	msg.SetContext(ctx)

	return ps.publisher.Publish(ps.topicName, msg)
}

// decodeMessage is the inverse of Publish.
func decodeMessage(msg *message.Message) (events.BaseEvent, error) {
	eventType := msg.Metadata.Get(metadataEventType)
	if eventType == "" {
		return events.BaseEvent{}, fmt.Errorf("message %s has no event type", msg.UUID)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &data); err != nil {
		return events.BaseEvent{}, fmt.Errorf("unmarshal %s payload: %w", eventType, err)
	}

	occurredAt := time.Now()
	if raw := msg.Metadata.Get(metadataOccurredAt); raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			occurredAt = t
		}
	}

	return events.New(eventType, data, occurredAt), nil
}

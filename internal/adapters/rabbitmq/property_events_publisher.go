package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"portfolio-service/internal/contextkeys"
	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RoutingKeyPrefix + тип изменения дает ключ маршрутизации, например "property.created".
const RoutingKeyPrefix = "property."

const publishTimeout = 10 * time.Second

type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// PropertyEventsPublisher реализует PropertyEventsPort поверх RabbitMQ.
type PropertyEventsPublisher struct {
	producer messagePublisher
}

func NewPropertyEventsPublisher(producer messagePublisher) (*PropertyEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &PropertyEventsPublisher{producer: producer}, nil
}

type propertyChangedMessage struct {
	Type       domain.ChangeType `json:"type"`
	PropertyID int64             `json:"property_id"`
	Property   *domain.Property  `json:"property,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func (a *PropertyEventsPublisher) PublishPropertyChanged(ctx context.Context, event domain.PropertyChangedEvent) error {
	routingKey := RoutingKeyPrefix + string(event.Type)
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PropertyEventsPublisher",
		"routing_key": routingKey,
		"property_id": event.PropertyID,
	})

	body, err := json.Marshal(propertyChangedMessage{
		Type:       event.Type,
		PropertyID: event.PropertyID,
		Property:   event.Property,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		logger.Error("Failed to marshal property event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to marshal event for property %d: %w", event.PropertyID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Headers:      amqp.Table{},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		logger.Error("Failed to publish property event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event for property %d: %w", event.PropertyID, err)
	}
	logger.Debug("Property event published", nil)
	return nil
}

package adapter

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mateusmacedo/go-crm/pkg/application"
	"github.com/mateusmacedo/go-crm/pkg/domain"
)

// KafkaEventBus distribui eventos via Kafka. Entrega at-least-once dentro do
// grupo de consumidores, por isso os manipuladores devem ser idempotentes.
type KafkaEventBus[E domain.Event[D], D any] struct {
	publisher  *kafka.Publisher
	subscriber *kafka.Subscriber
	handlers   map[string][]application.EventHandler[E, D]
	mu         sync.RWMutex
	logger     application.AppLogger
}

func NewKafkaEventBus[E domain.Event[D], D any](publisher *kafka.Publisher, subscriber *kafka.Subscriber, logger application.AppLogger) *KafkaEventBus[E, D] {
	return &KafkaEventBus[E, D]{
		publisher:  publisher,
		subscriber: subscriber,
		handlers:   make(map[string][]application.EventHandler[E, D]),
		logger:     logger,
	}
}

func (bus *KafkaEventBus[E, D]) RegisterHandler(eventName string, handler application.EventHandler[E, D]) {
	bus.mu.Lock()
	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	first := len(bus.handlers[eventName]) == 1
	bus.mu.Unlock()

	if !first {
		return
	}

	go bus.consume(eventName)
}

func (bus *KafkaEventBus[E, D]) consume(eventName string) {
	ctx := context.Background()

	messages, err := bus.subscriber.Subscribe(ctx, eventName)
	if err != nil {
		application.LogError(ctx, bus.logger, "error subscribing to event", err, map[string]interface{}{
			"event_name": eventName,
		})
		return
	}

	for msg := range messages {
		bus.handleMessage(ctx, eventName, msg)
	}
}

func (bus *KafkaEventBus[E, D]) handleMessage(ctx context.Context, eventName string, msg *message.Message) {
	var payload D
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		application.LogError(ctx, bus.logger, "error unmarshalling event payload", err, map[string]interface{}{
			"event_name": eventName,
		})
		msg.Nack()
		return
	}

	event := &dynamicEvent[D]{eventName: eventName, payload: payload}
	typedEvent, ok := interface{}(event).(E)
	if !ok {
		application.LogError(ctx, bus.logger, "error casting event", nil, map[string]interface{}{
			"event_name": eventName,
		})
		msg.Nack()
		return
	}

	bus.mu.RLock()
	handlers := bus.handlers[eventName]
	bus.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler.Handle(ctx, typedEvent); err != nil {
			application.LogError(ctx, bus.logger, "error handling event", err, map[string]interface{}{
				"event_name": eventName,
			})
			msg.Nack()
			return
		}
	}

	application.LogDebug(ctx, bus.logger, "event handled", map[string]interface{}{
		"event_name": eventName,
	})
	msg.Ack()
}

func (bus *KafkaEventBus[E, D]) Publish(ctx context.Context, event E) error {
	payload, err := application.MarshalPayload(event.Payload())
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return bus.publisher.Publish(event.EventName(), msg)
}

type dynamicEvent[D any] struct {
	eventName string
	payload   D
}

func (e *dynamicEvent[D]) EventName() string {
	return e.eventName
}

func (e *dynamicEvent[D]) Payload() D {
	return e.payload
}

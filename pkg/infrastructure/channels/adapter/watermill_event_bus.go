package adapter

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/mateusmacedo/go-crm/pkg/application"
	"github.com/mateusmacedo/go-crm/pkg/domain"
)

// WatermillEventBus distribui eventos em processo via gochannel. A publicação
// retorna assim que a mensagem é aceita pelo pub/sub; os manipuladores
// consomem de forma assíncrona, sem bloquear o publicador.
type WatermillEventBus[E domain.Event[D], D any] struct {
	pubSub   *gochannel.GoChannel
	handlers map[string][]application.EventHandler[E, D]
	mu       sync.RWMutex
	logger   application.AppLogger
}

func NewWatermillEventBus[E domain.Event[D], D any](pubSub *gochannel.GoChannel, logger application.AppLogger) *WatermillEventBus[E, D] {
	return &WatermillEventBus[E, D]{
		pubSub:   pubSub,
		handlers: make(map[string][]application.EventHandler[E, D]),
		logger:   logger,
	}
}

// RegisterHandler inscreve o barramento no tópico do evento antes de retornar.
// Com a inscrição estabelecida de forma síncrona, uma publicação feita após a
// montagem do pipeline nunca é perdida por corrida com o Subscribe. O laço de
// consumo termina quando o pub/sub dono for fechado.
func (bus *WatermillEventBus[E, D]) RegisterHandler(eventName string, handler application.EventHandler[E, D]) {
	bus.mu.Lock()
	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	first := len(bus.handlers[eventName]) == 1
	bus.mu.Unlock()

	if !first {
		return
	}

	messages, err := bus.pubSub.Subscribe(context.Background(), eventName)
	if err != nil {
		application.LogError(context.Background(), bus.logger, "error subscribing to event", err, map[string]interface{}{
			"event_name": eventName,
		})
		return
	}

	go bus.consume(eventName, messages)
}

func (bus *WatermillEventBus[E, D]) consume(eventName string, messages <-chan *message.Message) {
	ctx := context.Background()

	for msg := range messages {
		var payload D
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			application.LogError(ctx, bus.logger, "error unmarshalling event payload", err, map[string]interface{}{
				"event_name": eventName,
			})
			msg.Nack()
			continue
		}

		event := &dynamicEvent[D]{eventName: eventName, payload: payload}
		typedEvent, ok := interface{}(event).(E)
		if !ok {
			application.LogError(ctx, bus.logger, "error casting event", nil, map[string]interface{}{
				"event_name": eventName,
			})
			msg.Nack()
			continue
		}

		bus.mu.RLock()
		handlers := bus.handlers[eventName]
		bus.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler.Handle(ctx, typedEvent); err != nil {
				application.LogError(ctx, bus.logger, "error handling event", err, map[string]interface{}{
					"event_name": eventName,
				})
			}
		}
		msg.Ack()
	}
}

func (bus *WatermillEventBus[E, D]) Publish(ctx context.Context, event E) error {
	payload, err := application.MarshalPayload(event.Payload())
	if err != nil {
		application.LogError(ctx, bus.logger, "error marshalling event payload", err, map[string]interface{}{
			"event_name": event.EventName(),
		})
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return bus.pubSub.Publish(event.EventName(), msg)
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

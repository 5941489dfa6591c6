package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"github.com/mateusmacedo/go-crm/pkg/application"
	"github.com/mateusmacedo/go-crm/pkg/domain"
)

// simpleEventBus é uma implementação em processo de um barramento de eventos
// que entrega cada evento aos manipuladores registrados usando goroutines.
type simpleEventBus[E domain.Event[T], T any] struct {
	handlers map[string][]application.EventHandler[E, T]
	mu       sync.RWMutex
	logger   application.AppLogger
}

// NewSimpleEventBus cria uma nova instância do simpleEventBus.
func NewSimpleEventBus[E domain.Event[T], T any](logger application.AppLogger) application.EventBus[E, T] {
	return &simpleEventBus[E, T]{
		handlers: make(map[string][]application.EventHandler[E, T]),
		logger:   logger,
	}
}

// RegisterHandler registra um manipulador para um evento específico.
func (bus *simpleEventBus[E, T]) RegisterHandler(eventName string, handler application.EventHandler[E, T]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
}

// Publish publica um evento para os manipuladores registrados. Eventos sem
// manipulador são considerados um sucesso silencioso.
func (bus *simpleEventBus[E, T]) Publish(ctx context.Context, event E) error {
	bus.mu.RLock()
	handlers, found := bus.handlers[event.EventName()]
	bus.mu.RUnlock()

	if !found {
		application.LogDebug(ctx, bus.logger, "no handler registered for event", map[string]interface{}{
			"event_name": event.EventName(),
		})
		return nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(handlers))

	for _, handler := range handlers {
		wg.Add(1)
		go func(h application.EventHandler[E, T]) {
			defer wg.Done()
			if err := h.Handle(ctx, event); err != nil {
				errChan <- err
			}
		}(handler)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(errChan)
		close(done)
	}()

	select {
	case <-ctx.Done():
		application.LogError(ctx, bus.logger, "event publication cancelled", ctx.Err(), map[string]interface{}{
			"event_name": event.EventName(),
		})
		return ctx.Err()
	case <-done:
		return bus.collectErrors(ctx, event.EventName(), errChan)
	}
}

// collectErrors agrega os erros devolvidos pelos manipuladores em um único erro.
func (bus *simpleEventBus[E, T]) collectErrors(ctx context.Context, eventName string, errChan <-chan error) error {
	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		application.LogError(ctx, bus.logger, "error handling event", nil, map[string]interface{}{
			"event_name": eventName,
			"errors":     errs,
		})
		return fmt.Errorf("event %s: %v", eventName, errs)
	}

	application.LogDebug(ctx, bus.logger, "event published", map[string]interface{}{
		"event_name": eventName,
	})
	return nil
}

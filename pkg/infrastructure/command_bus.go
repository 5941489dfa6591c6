package infrastructure

import (
	"context"
	"errors"
	"sync"

	"github.com/mateusmacedo/go-crm/pkg/application"
	"github.com/mateusmacedo/go-crm/pkg/domain"
)

type simpleCommandBus[C domain.Command[D], D any] struct {
	handlers map[string]application.CommandHandler[C, D]
	mu       sync.RWMutex
}

// NewSimpleCommandBus cria um barramento de comandos em processo. Cada comando é
// despachado de forma síncrona para o manipulador registrado e o Outcome é
// devolvido diretamente ao chamador.
func NewSimpleCommandBus[C domain.Command[D], D any]() application.CommandBus[C, D] {
	return &simpleCommandBus[C, D]{
		handlers: make(map[string]application.CommandHandler[C, D]),
	}
}

func (bus *simpleCommandBus[C, D]) RegisterHandler(commandName string, handler application.CommandHandler[C, D]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[commandName] = handler
}

func (bus *simpleCommandBus[C, D]) Dispatch(ctx context.Context, command C) (application.Outcome, error) {
	bus.mu.RLock()
	handler, found := bus.handlers[command.CommandName()]
	bus.mu.RUnlock()

	if !found {
		return application.Outcome{}, errors.New("no handler registered for command")
	}

	return handler.Handle(ctx, command)
}

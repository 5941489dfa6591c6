package application

import (
	"context"

	"github.com/mateusmacedo/go-crm/pkg/domain"
)

// CommandHandler define a interface para manipuladores de comando.
// Handle devolve um Outcome com exatamente uma variante populada; o erro
// é reservado para falhas inesperadas de infraestrutura e cancelamento de contexto.
type CommandHandler[C domain.Command[T], T any] interface {
	Handle(ctx context.Context, command C) (Outcome, error)
}

// CommandBus define a interface para o barramento de comandos.
type CommandBus[C domain.Command[T], T any] interface {
	RegisterHandler(commandName string, handler CommandHandler[C, T]) // Registra um manipulador de comando
	Dispatch(ctx context.Context, command C) (Outcome, error)         // Despacha um comando
}

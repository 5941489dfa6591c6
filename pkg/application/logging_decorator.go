package application

import (
	"context"
	"time"

	"github.com/mateusmacedo/go-crm/pkg/domain"
)

// loggingCommandHandler envolve um CommandHandler registrando entrada, saída e
// duração de cada comando. Observa o resultado sem alterá-lo: o Outcome e o erro
// do manipulador interno são devolvidos intactos.
type loggingCommandHandler[C domain.Command[T], T any] struct {
	inner  CommandHandler[C, T]
	logger AppLogger
}

// NewLoggingCommandHandler cria o estágio de observabilidade para um manipulador de comando.
func NewLoggingCommandHandler[C domain.Command[T], T any](inner CommandHandler[C, T], logger AppLogger) CommandHandler[C, T] {
	return &loggingCommandHandler[C, T]{
		inner:  inner,
		logger: logger,
	}
}

func (h *loggingCommandHandler[C, T]) Handle(ctx context.Context, command C) (Outcome, error) {
	start := time.Now()

	LogInfo(ctx, h.logger, "command received", map[string]interface{}{
		"command_name": command.CommandName(),
	})

	outcome, err := h.inner.Handle(ctx, command)
	elapsed := time.Since(start)

	if err != nil {
		LogError(ctx, h.logger, "command failed", err, map[string]interface{}{
			"command_name": command.CommandName(),
			"elapsed":      elapsed.String(),
		})
		return outcome, err
	}

	LogInfo(ctx, h.logger, "command handled", map[string]interface{}{
		"command_name": command.CommandName(),
		"elapsed":      elapsed.String(),
		"status":       outcome.Status.String(),
	})

	return outcome, nil
}

package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-crm/pkg/application"
	"github.com/mateusmacedo/go-crm/pkg/domain"
)

type fakeCommand struct {
	name string
	data string
}

func (c fakeCommand) CommandName() string {
	return c.name
}

func (c fakeCommand) Payload() string {
	return c.data
}

type stubHandler struct {
	outcome application.Outcome
	err     error
	calls   int
}

func (h *stubHandler) Handle(_ context.Context, _ domain.Command[string]) (application.Outcome, error) {
	h.calls++
	return h.outcome, h.err
}

type spyLogger struct {
	infos  []string
	errors []string
}

func (l *spyLogger) Info(_ context.Context, msg string, _ map[string]interface{}) {
	l.infos = append(l.infos, msg)
}

func (l *spyLogger) Debug(context.Context, string, map[string]interface{}) {}

func (l *spyLogger) Error(_ context.Context, msg string, _ map[string]interface{}) {
	l.errors = append(l.errors, msg)
}

func (l *spyLogger) Trace(context.Context, string, map[string]interface{}) {}

func TestLoggingCommandHandlerPreservesOutcome(t *testing.T) {
	inner := &stubHandler{outcome: application.NewSuccessOutcome("id-1", "done")}
	logger := &spyLogger{}

	decorated := application.NewLoggingCommandHandler[domain.Command[string], string](inner, logger)

	outcome, err := decorated.Handle(context.Background(), fakeCommand{name: "DoSomething"})

	require.NoError(t, err)
	assert.Equal(t, inner.outcome, outcome)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, []string{"command received", "command handled"}, logger.infos)
	assert.Empty(t, logger.errors)
}

func TestLoggingCommandHandlerPreservesError(t *testing.T) {
	innerErr := errors.New("boom")
	inner := &stubHandler{err: innerErr}
	logger := &spyLogger{}

	decorated := application.NewLoggingCommandHandler[domain.Command[string], string](inner, logger)

	_, err := decorated.Handle(context.Background(), fakeCommand{name: "DoSomething"})

	// o estágio de observabilidade registra e repassa a falha sem alterá-la
	require.ErrorIs(t, err, innerErr)
	assert.Equal(t, []string{"command failed"}, logger.errors)
}

func TestOutcomeVariants(t *testing.T) {
	success := application.NewSuccessOutcome("id-1", "ok")
	assert.True(t, success.IsSuccess())
	assert.False(t, success.IsValidationFailure())
	assert.False(t, success.IsBusinessFailure())

	validation := application.NewValidationFailureOutcome([]application.FieldError{{Field: "email", Message: "is required"}})
	assert.True(t, validation.IsValidationFailure())
	assert.Equal(t, "validation_failure", validation.Status.String())

	business := application.NewBusinessFailureOutcome("duplicate")
	assert.True(t, business.IsBusinessFailure())
	assert.Equal(t, []string{"duplicate"}, business.BusinessErrors)
}

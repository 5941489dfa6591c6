package infrastructure_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-crm/pkg/application"
	"github.com/mateusmacedo/go-crm/pkg/domain"
	"github.com/mateusmacedo/go-crm/pkg/infrastructure"
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

type recordingHandler struct {
	received []string
}

func (h *recordingHandler) Handle(_ context.Context, command domain.Command[string]) (application.Outcome, error) {
	h.received = append(h.received, command.Payload())
	return application.NewSuccessOutcome(command.Payload(), "handled"), nil
}

func TestSimpleCommandBusDispatch(t *testing.T) {
	bus := infrastructure.NewSimpleCommandBus[domain.Command[string], string]()
	handler := &recordingHandler{}
	bus.RegisterHandler("DoSomething", handler)

	outcome, err := bus.Dispatch(context.Background(), fakeCommand{name: "DoSomething", data: "payload"})

	require.NoError(t, err)
	assert.True(t, outcome.IsSuccess())
	assert.Equal(t, []string{"payload"}, handler.received)
}

func TestSimpleCommandBusUnknownCommand(t *testing.T) {
	bus := infrastructure.NewSimpleCommandBus[domain.Command[string], string]()

	_, err := bus.Dispatch(context.Background(), fakeCommand{name: "Unknown"})

	require.EqualError(t, err, "no handler registered for command")
}

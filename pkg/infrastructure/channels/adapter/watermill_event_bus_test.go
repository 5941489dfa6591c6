package adapter_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
	"github.com/mateusmacedo/go-crm/pkg/infrastructure/channels/adapter"
)

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, map[string]interface{}) {}
func (nopLogger) Debug(context.Context, string, map[string]interface{}) {}
func (nopLogger) Error(context.Context, string, map[string]interface{}) {}
func (nopLogger) Trace(context.Context, string, map[string]interface{}) {}

type notePayload struct {
	Text string `json:"text"`
}

type noteEvent struct {
	payload notePayload
}

func (e noteEvent) EventName() string {
	return "NoteTaken"
}

func (e noteEvent) Payload() notePayload {
	return e.payload
}

type captureHandler struct {
	received chan notePayload
}

func (h *captureHandler) Handle(_ context.Context, event pkgDomain.Event[notePayload]) error {
	h.received <- event.Payload()
	return nil
}

// A inscrição acontece dentro do RegisterHandler, de forma síncrona: uma
// publicação feita logo depois da montagem do pipeline deve chegar ao
// manipulador, sem janela de corrida com o Subscribe.
func TestPublishAfterRegisterHandlerIsDelivered(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	bus := adapter.NewWatermillEventBus[pkgDomain.Event[notePayload], notePayload](pubSub, nopLogger{})

	handler := &captureHandler{received: make(chan notePayload, 1)}
	bus.RegisterHandler("NoteTaken", handler)

	require.NoError(t, bus.Publish(context.Background(), noteEvent{payload: notePayload{Text: "hello"}}))

	select {
	case payload := <-handler.received:
		assert.Equal(t, "hello", payload.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered to the handler")
	}
}

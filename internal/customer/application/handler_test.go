package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-crm/internal/customer/application"
	"github.com/mateusmacedo/go-crm/internal/customer/domain"
	"github.com/mateusmacedo/go-crm/internal/customer/infrastructure"
	pkgApp "github.com/mateusmacedo/go-crm/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-crm/pkg/infrastructure"
)

// nopLogger descarta tudo; suficiente para exercitar o pipeline nos testes.
type nopLogger struct{}

func (nopLogger) Info(context.Context, string, map[string]interface{}) {}
func (nopLogger) Debug(context.Context, string, map[string]interface{}) {}
func (nopLogger) Error(context.Context, string, map[string]interface{}) {}
func (nopLogger) Trace(context.Context, string, map[string]interface{}) {}

// failingReadModel força SyncFailure no upsert da projeção.
type failingReadModel struct {
	*infrastructure.MemoryCustomerReadModel
	upsertErr error
}

func (m *failingReadModel) Upsert(ctx context.Context, doc domain.CustomerDocument) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	return m.MemoryCustomerReadModel.Upsert(ctx, doc)
}

type pipeline struct {
	handler   pkgApp.CommandHandler[pkgDomain.Command[application.RegisterCustomerData], application.RegisterCustomerData]
	store     *infrastructure.MemoryCustomerStore
	readModel domain.CustomerReadModel
}

// newPipeline monta o pipeline completo sobre a infraestrutura em memória,
// com o barramento de eventos síncrono entregando a notificação de commit ao
// sincronizador de leitura.
func newPipeline(readModel domain.CustomerReadModel) pipeline {
	logger := nopLogger{}

	eventBus := pkgInfra.NewSimpleEventBus[pkgDomain.Event[domain.CustomerRegistered], domain.CustomerRegistered](logger)
	eventBus.RegisterHandler("CustomerRegistered", application.NewCustomerProjectionSynchronizer(readModel, logger))

	store := infrastructure.NewMemoryCustomerStore(eventBus, logger)

	handler := pkgApp.NewLoggingCommandHandler(
		application.NewRegisterCustomerHandler(
			store,
			application.NewRegisterCustomerValidator(),
			func() string { return uuid.New().String() },
			logger,
		),
		logger,
	)

	return pipeline{handler: handler, store: store, readModel: readModel}
}

func TestRegisterCustomerSuccess(t *testing.T) {
	readModel := infrastructure.NewMemoryCustomerReadModel()
	p := newPipeline(readModel)

	command := application.NewRegisterCustomerCommand(validRegisterCustomerData())

	outcome, err := p.handler.Handle(context.Background(), command)

	require.NoError(t, err)
	require.True(t, outcome.IsSuccess())
	assert.Equal(t, application.CustomerRegisteredMessage, outcome.Message)

	customerID, ok := outcome.Value.(string)
	require.True(t, ok)
	assert.NotEmpty(t, customerID)

	// agregado persistido e evento anexado ao log
	assert.Equal(t, 1, p.store.CustomerCount())
	events := p.store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.AggregateType, events[0].AggregateType)
	assert.Equal(t, customerID, events[0].AggregateID)
	assert.Equal(t, "CustomerRegistered", events[0].EventName)
	assert.NotEmpty(t, events[0].TransactionID)

	// projeção sincronizada no read store
	doc, err := readModel.FindByID(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", doc.FullName)
	assert.Equal(t, "ana@x.com", doc.Email)
	assert.Equal(t, "female", doc.Gender)
	assert.Equal(t, "1990-01-01", doc.DateOfBirth)
}

func TestRegisterCustomerDuplicateEmail(t *testing.T) {
	p := newPipeline(infrastructure.NewMemoryCustomerReadModel())

	first, err := p.handler.Handle(context.Background(), application.NewRegisterCustomerCommand(validRegisterCustomerData()))
	require.NoError(t, err)
	require.True(t, first.IsSuccess())

	second, err := p.handler.Handle(context.Background(), application.NewRegisterCustomerCommand(validRegisterCustomerData()))
	require.NoError(t, err)

	require.True(t, second.IsBusinessFailure())
	assert.Equal(t, []string{application.DuplicateEmailMessage}, second.BusinessErrors)

	// nenhum registro duplicado no armazenamento
	assert.Equal(t, 1, p.store.CustomerCount())
	assert.Len(t, p.store.Events(), 1)
}

func TestRegisterCustomerDuplicateEmailWithDifferentCase(t *testing.T) {
	p := newPipeline(infrastructure.NewMemoryCustomerReadModel())

	first, err := p.handler.Handle(context.Background(), application.NewRegisterCustomerCommand(validRegisterCustomerData()))
	require.NoError(t, err)
	require.True(t, first.IsSuccess())

	// o e-mail é comparado na forma canônica: variar a caixa não contorna a
	// unicidade da chave de negócio
	data := validRegisterCustomerData()
	data.Email = "Ana@X.com"
	second, err := p.handler.Handle(context.Background(), application.NewRegisterCustomerCommand(data))
	require.NoError(t, err)

	require.True(t, second.IsBusinessFailure())
	assert.Equal(t, []string{application.DuplicateEmailMessage}, second.BusinessErrors)
	assert.Equal(t, 1, p.store.CustomerCount())
}

func TestRegisterCustomerValidationFailure(t *testing.T) {
	readModel := infrastructure.NewMemoryCustomerReadModel()
	p := newPipeline(readModel)

	outcome, err := p.handler.Handle(context.Background(), application.NewRegisterCustomerCommand(application.RegisterCustomerData{}))

	require.NoError(t, err)
	require.True(t, outcome.IsValidationFailure())
	assert.NotEmpty(t, outcome.FieldErrors)

	// nenhum acesso de escrita realizado
	assert.Equal(t, 0, p.store.CustomerCount())
	assert.Empty(t, p.store.Events())

	docs, err := readModel.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRegisterCustomerCommitFailure(t *testing.T) {
	readModel := infrastructure.NewMemoryCustomerReadModel()
	p := newPipeline(readModel)

	p.store.FailCommitWith(errors.New("connection lost"))

	outcome, err := p.handler.Handle(context.Background(), application.NewRegisterCustomerCommand(validRegisterCustomerData()))

	require.NoError(t, err)
	require.True(t, outcome.IsBusinessFailure())
	assert.Equal(t, []string{"connection lost"}, outcome.BusinessErrors)

	// transação abortada: nada persistido, nenhum evento, nenhuma projeção
	assert.Equal(t, 0, p.store.CustomerCount())
	assert.Empty(t, p.store.Events())

	docs, err := readModel.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRegisterCustomerSyncFailureIsIsolated(t *testing.T) {
	readModel := &failingReadModel{
		MemoryCustomerReadModel: infrastructure.NewMemoryCustomerReadModel(),
		upsertErr:               errors.New("read store unavailable"),
	}
	p := newPipeline(readModel)

	outcome, err := p.handler.Handle(context.Background(), application.NewRegisterCustomerCommand(validRegisterCustomerData()))

	// a falha do sincronizador não reverte o commit nem aparece no Outcome
	require.NoError(t, err)
	require.True(t, outcome.IsSuccess())
	assert.Equal(t, 1, p.store.CustomerCount())
	assert.Len(t, p.store.Events(), 1)
}

func TestRegisterCustomerCancelledContext(t *testing.T) {
	p := newPipeline(infrastructure.NewMemoryCustomerReadModel())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.handler.Handle(ctx, application.NewRegisterCustomerCommand(validRegisterCustomerData()))

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, p.store.CustomerCount())
	assert.Empty(t, p.store.Events())
}

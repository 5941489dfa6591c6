package customer

import (
	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/go-crm/internal/customer/application"
	"github.com/mateusmacedo/go-crm/internal/customer/domain"
	"github.com/mateusmacedo/go-crm/internal/customer/infrastructure"
	pkgApp "github.com/mateusmacedo/go-crm/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
)

// CustomerSlice compõe o pipeline completo do agregado de cliente: validação,
// unicidade, unidade de trabalho, log de eventos, sincronização de leitura e
// o estágio de observabilidade ao redor do manipulador de comando.
type CustomerSlice struct {
	httpHandler *infrastructure.CustomerHTTPHandler
}

func NewCustomerSlice(
	commandBus pkgApp.CommandBus[pkgDomain.Command[application.RegisterCustomerData], application.RegisterCustomerData],
	queryBus pkgApp.QueryBus[pkgDomain.Query[application.FindCustomerData], application.FindCustomerData, []domain.CustomerDocument],
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
	eventBus pkgApp.EventBus[pkgDomain.Event[domain.CustomerRegistered], domain.CustomerRegistered],
	uowFactory domain.UnitOfWorkFactory,
	readModel domain.CustomerReadModel,
) *CustomerSlice {
	validator := application.NewRegisterCustomerValidator()

	commandHandler := pkgApp.NewLoggingCommandHandler(
		application.NewRegisterCustomerHandler(uowFactory, validator, idGenerator, logger),
		logger,
	)
	queryHandler := application.NewFindCustomerHandler(readModel, logger)
	synchronizer := application.NewCustomerProjectionSynchronizer(readModel, logger)

	commandBus.RegisterHandler("RegisterCustomer", commandHandler)
	queryBus.RegisterHandler("FindCustomer", queryHandler)
	eventBus.RegisterHandler("CustomerRegistered", synchronizer)

	httpHandler := infrastructure.NewCustomerHTTPHandler(commandBus, queryBus)

	return &CustomerSlice{
		httpHandler: httpHandler,
	}
}

func (s *CustomerSlice) RegisterRoutes(router *chi.Mux) {
	s.httpHandler.RegisterRoutes(router)
}

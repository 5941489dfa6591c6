package application

import (
	"context"
	"errors"
	"time"

	"github.com/mateusmacedo/go-crm/internal/customer/domain"
	pkgApp "github.com/mateusmacedo/go-crm/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
)

// Mensagens fixas devolvidas ao chamador no Outcome.
const (
	CustomerRegisteredMessage = "customer successfully registered"
	DuplicateEmailMessage     = "the customer e-mail has already been taken"
)

// registerCustomerHandler conduz o comando pelo pipeline: validação,
// checagem de unicidade, estagiamento do agregado e commit da unidade de
// trabalho. Cada transição terminal mapeia para uma variante do Outcome.
type registerCustomerHandler struct {
	uowFactory  domain.UnitOfWorkFactory
	validator   *RegisterCustomerValidator
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
}

func NewRegisterCustomerHandler(
	uowFactory domain.UnitOfWorkFactory,
	validator *RegisterCustomerValidator,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
) pkgApp.CommandHandler[pkgDomain.Command[RegisterCustomerData], RegisterCustomerData] {
	return &registerCustomerHandler{
		uowFactory:  uowFactory,
		validator:   validator,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

func (h *registerCustomerHandler) Handle(ctx context.Context, command pkgDomain.Command[RegisterCustomerData]) (pkgApp.Outcome, error) {
	select {
	case <-ctx.Done():
		return pkgApp.Outcome{}, ctx.Err()
	default:
	}

	data := command.Payload()

	// Received -> Rejected: a falha de validação nunca toca o armazenamento.
	if fieldErrors := h.validator.Validate(data); len(fieldErrors) > 0 {
		return pkgApp.NewValidationFailureOutcome(fieldErrors), nil
	}

	uow := h.uowFactory.New()
	repository := uow.Customers()

	// Validated -> DuplicateRejected: checagem rápida de unicidade. A garantia
	// final é a restrição de unicidade do próprio armazenamento autoritativo.
	exists, err := repository.ExistsByEmail(ctx, data.Email)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return pkgApp.Outcome{}, err
		}
		pkgApp.LogError(ctx, h.logger, "failed to check customer e-mail uniqueness", err, map[string]interface{}{
			"email": data.Email,
		})
		return pkgApp.NewBusinessFailureOutcome(err.Error()), nil
	}
	if exists {
		return pkgApp.NewBusinessFailureOutcome(DuplicateEmailMessage), nil
	}

	// Checked -> Staged: os valores já passaram pela validação estrutural.
	gender, _ := domain.ParseGender(data.Gender)
	dateOfBirth, _ := time.Parse(DateOfBirthLayout, data.DateOfBirth)

	customer := domain.NewCustomer(
		h.idGenerator(),
		data.FirstName,
		data.LastName,
		gender,
		data.Email,
		dateOfBirth,
		time.Now().UTC(),
	)

	if err := repository.Add(ctx, customer); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to stage customer", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return pkgApp.NewBusinessFailureOutcome(err.Error()), nil
	}

	// Staged -> (CommitFailed | Committed).
	if err := uow.Commit(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return pkgApp.Outcome{}, err
		}
		pkgApp.LogError(ctx, h.logger, "failed to commit customer registration", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return pkgApp.NewBusinessFailureOutcome(err.Error()), nil
	}

	return pkgApp.NewSuccessOutcome(customer.ID, CustomerRegisteredMessage), nil
}

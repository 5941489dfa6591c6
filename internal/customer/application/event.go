package application

import (
	"context"

	"github.com/mateusmacedo/go-crm/internal/customer/domain"
	pkgApp "github.com/mateusmacedo/go-crm/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
)

// customerProjectionSynchronizer é o sincronizador do lado de leitura: recebe a
// notificação de commit e faz o upsert da projeção desnormalizada no read
// store. A aplicação é idempotente, tolerando entrega at-least-once; falhas são
// registradas e devolvidas ao barramento para retentativa, nunca ao chamador
// do comando.
type customerProjectionSynchronizer struct {
	readModel domain.CustomerReadModel
	logger    pkgApp.AppLogger
}

func NewCustomerProjectionSynchronizer(readModel domain.CustomerReadModel, logger pkgApp.AppLogger) pkgApp.EventHandler[pkgDomain.Event[domain.CustomerRegistered], domain.CustomerRegistered] {
	return &customerProjectionSynchronizer{
		readModel: readModel,
		logger:    logger,
	}
}

func (h *customerProjectionSynchronizer) Handle(ctx context.Context, event pkgDomain.Event[domain.CustomerRegistered]) error {
	data := event.Payload()

	doc := domain.CustomerDocument{
		ID:           data.ID,
		FullName:     data.FirstName + " " + data.LastName,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Gender:       string(data.Gender),
		Email:        data.Email,
		DateOfBirth:  data.DateOfBirth.Format(DateOfBirthLayout),
		RegisteredAt: data.RegisteredAt,
	}

	if err := h.readModel.Upsert(ctx, doc); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to sync customer projection", err, map[string]interface{}{
			"customer_id": doc.ID,
		})
		return err
	}

	pkgApp.LogDebug(ctx, h.logger, "customer projection synced", map[string]interface{}{
		"customer_id": doc.ID,
	})
	return nil
}

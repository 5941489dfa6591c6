package application

import (
	"context"

	"github.com/mateusmacedo/go-crm/internal/customer/domain"
	pkgApp "github.com/mateusmacedo/go-crm/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
)

// findCustomerHandler atende consultas exclusivamente a partir da projeção no
// read store; o armazenamento autoritativo nunca é tocado no caminho de leitura.
type findCustomerHandler struct {
	readModel domain.CustomerReadModel
	logger    pkgApp.AppLogger
}

func NewFindCustomerHandler(readModel domain.CustomerReadModel, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[FindCustomerData], FindCustomerData, []domain.CustomerDocument] {
	return &findCustomerHandler{
		readModel: readModel,
		logger:    logger,
	}
}

func (h *findCustomerHandler) Handle(ctx context.Context, query pkgDomain.Query[FindCustomerData]) ([]domain.CustomerDocument, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data := query.Payload()
	if data.CustomerID == "" {
		return h.readModel.FindAll(ctx)
	}

	doc, err := h.readModel.FindByID(ctx, data.CustomerID)
	if err != nil {
		return nil, err
	}
	return []domain.CustomerDocument{doc}, nil
}

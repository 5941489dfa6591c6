package infrastructure

import (
	"context"
	"errors"
	"sync"

	"github.com/mateusmacedo/go-crm/internal/customer/domain"
	"github.com/mateusmacedo/go-crm/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-crm/pkg/infrastructure"
)

// ErrDuplicateEmail é a violação da restrição de unicidade do armazém em
// memória, espelhando o papel do índice único de e-mail no banco.
var ErrDuplicateEmail = errors.New("customer e-mail already exists")

// MemoryCustomerStore é o armazenamento autoritativo em memória: tabela de
// clientes e log de eventos compartilhados por todas as unidades de trabalho
// criadas a partir dele.
type MemoryCustomerStore struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
	events    []domain.EventRecord

	eventBus application.EventBus[pkgDomain.Event[domain.CustomerRegistered], domain.CustomerRegistered]
	logger   application.AppLogger

	commitErr error
}

func NewMemoryCustomerStore(
	eventBus application.EventBus[pkgDomain.Event[domain.CustomerRegistered], domain.CustomerRegistered],
	logger application.AppLogger,
) *MemoryCustomerStore {
	return &MemoryCustomerStore{
		customers: make(map[string]domain.Customer),
		eventBus:  eventBus,
		logger:    logger,
	}
}

// FailCommitWith força a próxima tentativa de commit a falhar. Útil para
// exercitar o caminho de rollback sem um banco real.
func (s *MemoryCustomerStore) FailCommitWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErr = err
}

// CustomerCount devolve a quantidade de clientes persistidos.
func (s *MemoryCustomerStore) CustomerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers)
}

// Events devolve uma cópia do log de eventos.
func (s *MemoryCustomerStore) Events() []domain.EventRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.EventRecord, len(s.events))
	copy(out, s.events)
	return out
}

// New devolve uma unidade de trabalho exclusiva sobre este armazém.
func (s *MemoryCustomerStore) New() domain.UnitOfWork {
	return &memoryUnitOfWork{store: s}
}

type memoryUnitOfWork struct {
	store  *MemoryCustomerStore
	staged []*domain.Customer
}

func (u *memoryUnitOfWork) Customers() domain.CustomerRepository {
	return &memoryCustomerRepository{uow: u}
}

// Commit aplica os agregados estagiados e anexa os eventos pendentes ao log
// sob o mesmo lock, tudo ou nada. A notificação pós-commit segue a mesma
// política da implementação transacional: falha é registrada, nunca propagada.
func (u *memoryUnitOfWork) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(u.staged) == 0 {
		return nil
	}

	if err := u.store.apply(ctx, u.staged); err != nil {
		return err
	}

	for _, customer := range u.staged {
		for _, event := range customer.PendingEvents() {
			if err := u.store.eventBus.Publish(ctx, event); err != nil {
				application.LogError(ctx, u.store.logger, "failed to publish committed event", err, map[string]interface{}{
					"event_name":  event.EventName(),
					"customer_id": customer.ID,
				})
			}
		}
		customer.ClearPendingEvents()
	}
	u.staged = nil

	return nil
}

func (s *MemoryCustomerStore) apply(_ context.Context, staged []*domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.commitErr != nil {
		return s.commitErr
	}

	// unicidade da chave de negócio como última linha de defesa; as duas
	// pontas já estão na forma canônica escrita pela fábrica do agregado
	for _, customer := range staged {
		for _, existing := range s.customers {
			if existing.Email == customer.Email {
				return ErrDuplicateEmail
			}
		}
	}

	// serializa tudo antes de mutar, para manter o apply tudo-ou-nada
	transactionID := pkgInfra.GenerateUUID()
	var records []domain.EventRecord
	for _, customer := range staged {
		for _, event := range customer.PendingEvents() {
			payload, err := application.MarshalPayload(event.Payload())
			if err != nil {
				return err
			}
			records = append(records, domain.EventRecord{
				AggregateType: domain.AggregateType,
				AggregateID:   customer.ID,
				EventName:     event.EventName(),
				Payload:       payload,
				TransactionID: transactionID,
			})
		}
	}

	for _, customer := range staged {
		s.customers[customer.ID] = *customer
	}
	s.events = append(s.events, records...)
	return nil
}

type memoryCustomerRepository struct {
	uow *memoryUnitOfWork
}

func (r *memoryCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	email = domain.NormalizeEmail(email)

	for _, staged := range r.uow.staged {
		if staged.Email == email {
			return true, nil
		}
	}

	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	for _, existing := range r.uow.store.customers {
		if existing.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryCustomerRepository) Add(_ context.Context, customer *domain.Customer) error {
	r.uow.staged = append(r.uow.staged, customer)
	return nil
}

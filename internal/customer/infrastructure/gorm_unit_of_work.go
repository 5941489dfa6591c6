package infrastructure

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mateusmacedo/go-crm/internal/customer/domain"
	"github.com/mateusmacedo/go-crm/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-crm/pkg/infrastructure"
)

// StoredEvent é a linha do log de eventos no armazenamento autoritativo. As
// linhas são escritas na MESMA transação que persiste os agregados (outbox),
// de modo que commit da escrita e anexação no log formam uma unidade atômica.
type StoredEvent struct {
	ID            string    `gorm:"primaryKey;size:36"`
	AggregateType string    `gorm:"size:64;not null;index:idx_stored_events_aggregate"`
	AggregateID   string    `gorm:"size:36;not null;index:idx_stored_events_aggregate"`
	EventName     string    `gorm:"size:128;not null"`
	Payload       []byte    `gorm:"type:jsonb;not null"`
	TransactionID string    `gorm:"size:36;not null;index"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (StoredEvent) TableName() string {
	return "stored_events"
}

// gormEventLog anexa registros dentro da transação ativa da unidade de trabalho.
type gormEventLog struct {
	tx *gorm.DB
}

func (l gormEventLog) Append(ctx context.Context, record domain.EventRecord) error {
	row := StoredEvent{
		ID:            pkgInfra.GenerateUUID(),
		AggregateType: record.AggregateType,
		AggregateID:   record.AggregateID,
		EventName:     record.EventName,
		Payload:       record.Payload,
		TransactionID: record.TransactionID,
		CreatedAt:     time.Now().UTC(),
	}
	return l.tx.WithContext(ctx).Create(&row).Error
}

// GormUnitOfWorkFactory cria unidades de trabalho sobre o banco autoritativo.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	eventBus application.EventBus[pkgDomain.Event[domain.CustomerRegistered], domain.CustomerRegistered]
	logger   application.AppLogger
}

func NewGormUnitOfWorkFactory(
	dsn string,
	eventBus application.EventBus[pkgDomain.Event[domain.CustomerRegistered], domain.CustomerRegistered],
	logger application.AppLogger,
) (*GormUnitOfWorkFactory, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(&domain.Customer{}, &StoredEvent{}); err != nil {
		return nil, err
	}

	return &GormUnitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
		logger:   logger,
	}, nil
}

// New devolve uma unidade de trabalho exclusiva para o comando em voo.
func (f *GormUnitOfWorkFactory) New() domain.UnitOfWork {
	return &gormUnitOfWork{
		db:       f.db,
		eventBus: f.eventBus,
		logger:   f.logger,
	}
}

type gormUnitOfWork struct {
	db       *gorm.DB
	eventBus application.EventBus[pkgDomain.Event[domain.CustomerRegistered], domain.CustomerRegistered]
	logger   application.AppLogger
	staged   []*domain.Customer
}

func (u *gormUnitOfWork) Customers() domain.CustomerRepository {
	return &gormCustomerRepository{uow: u}
}

// Commit persiste os agregados estagiados e os seus eventos pendentes em uma
// única transação e, após o commit, publica a notificação para o lado de
// leitura. Se a transação falhar, nada é anexado ao log e nenhuma notificação
// é publicada; se a publicação falhar, o commit não é revertido.
func (u *gormUnitOfWork) Commit(ctx context.Context) error {
	if len(u.staged) == 0 {
		return nil
	}

	transactionID := pkgInfra.GenerateUUID()

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		log := gormEventLog{tx: tx}
		for _, customer := range u.staged {
			if err := tx.Create(customer).Error; err != nil {
				return err
			}
			for _, event := range customer.PendingEvents() {
				payload, err := application.MarshalPayload(event.Payload())
				if err != nil {
					return err
				}
				record := domain.EventRecord{
					AggregateType: domain.AggregateType,
					AggregateID:   customer.ID,
					EventName:     event.EventName(),
					Payload:       payload,
					TransactionID: transactionID,
				}
				if err := log.Append(ctx, record); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		application.LogError(ctx, u.logger, "unit of work commit failed", err, map[string]interface{}{
			"transaction_id": transactionID,
		})
		return err
	}

	u.publishCommitted(ctx)

	for _, customer := range u.staged {
		customer.ClearPendingEvents()
	}
	u.staged = nil

	return nil
}

// publishCommitted notifica o sincronizador de leitura. O estado autoritativo
// já mudou neste ponto: falhas aqui são registradas para retentativa fora de
// banda e nunca aparecem como falha do comando.
func (u *gormUnitOfWork) publishCommitted(ctx context.Context) {
	for _, customer := range u.staged {
		for _, event := range customer.PendingEvents() {
			if err := u.eventBus.Publish(ctx, event); err != nil {
				application.LogError(ctx, u.logger, "failed to publish committed event", err, map[string]interface{}{
					"event_name":  event.EventName(),
					"customer_id": customer.ID,
				})
			}
		}
	}
}

type gormCustomerRepository struct {
	uow *gormUnitOfWork
}

// ExistsByEmail enxerga primeiro os clientes estagiados na unidade de trabalho
// corrente e só então consulta o banco. Checagem rápida: a proteção definitiva
// contra duplicatas é o índice único de e-mail no banco, que guarda apenas a
// forma canônica escrita pela fábrica do agregado.
func (r *gormCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	email = domain.NormalizeEmail(email)

	for _, staged := range r.uow.staged {
		if staged.Email == email {
			return true, nil
		}
	}

	var count int64
	if err := r.uow.db.WithContext(ctx).Model(&domain.Customer{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add estagia o cliente para inserção; nada é escrito até o Commit.
func (r *gormCustomerRepository) Add(_ context.Context, customer *domain.Customer) error {
	r.uow.staged = append(r.uow.staged, customer)
	return nil
}

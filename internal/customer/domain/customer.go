package domain

import (
	"context"
	"strings"
	"time"

	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
)

// Gender enumera os gêneros aceitos no cadastro de clientes.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender converte o valor textual informado pelo chamador. Os valores
// aceitos são exatamente os da enumeração; variações de caixa são rejeitadas
// na validação estrutural e aqui.
func ParseGender(value string) (Gender, bool) {
	switch Gender(value) {
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	default:
		return "", false
	}
}

// NormalizeEmail devolve a forma canônica da chave de negócio. Toda comparação
// de unicidade e toda escrita persistem o e-mail nesta forma, de modo que a
// igualdade por string simples (inclusive o índice único do banco) implemente
// a mesma relação em todas as implementações do repositório.
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}

// Customer é o agregado de cliente. A identidade é atribuída na criação e
// nunca reatribuída; o e-mail é a chave de negócio única entre todos os
// clientes persistidos. Mutações passam pelo comportamento do agregado, que
// acumula os eventos de domínio pendentes até o commit da unidade de trabalho.
type Customer struct {
	ID           string    `gorm:"primaryKey;size:36"`
	FirstName    string    `gorm:"size:100;not null"`
	LastName     string    `gorm:"size:100;not null"`
	Gender       Gender    `gorm:"size:16;not null"`
	Email        string    `gorm:"size:254;not null;uniqueIndex"`
	DateOfBirth  time.Time `gorm:"not null"`
	RegisteredAt time.Time `gorm:"not null"`

	pendingEvents []pkgDomain.Event[CustomerRegistered]
}

// NewCustomer é a fábrica do agregado: constrói o cliente a partir de dados já
// validados e registra o evento de domínio correspondente à criação.
func NewCustomer(id, firstName, lastName string, gender Gender, email string, dateOfBirth, registeredAt time.Time) *Customer {
	customer := &Customer{
		ID:           id,
		FirstName:    firstName,
		LastName:     lastName,
		Gender:       gender,
		Email:        NormalizeEmail(email),
		DateOfBirth:  dateOfBirth,
		RegisteredAt: registeredAt,
	}

	customer.record(NewCustomerRegisteredEvent(CustomerRegistered{
		ID:           customer.ID,
		FirstName:    customer.FirstName,
		LastName:     customer.LastName,
		Gender:       customer.Gender,
		Email:        customer.Email,
		DateOfBirth:  customer.DateOfBirth,
		RegisteredAt: customer.RegisteredAt,
	}))

	return customer
}

// FullName devolve o nome completo do cliente.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Customer) record(event pkgDomain.Event[CustomerRegistered]) {
	c.pendingEvents = append(c.pendingEvents, event)
}

// PendingEvents devolve os eventos acumulados na operação corrente.
func (c *Customer) PendingEvents() []pkgDomain.Event[CustomerRegistered] {
	return c.pendingEvents
}

// ClearPendingEvents descarta os eventos pendentes após o commit.
func (c *Customer) ClearPendingEvents() {
	c.pendingEvents = nil
}

// CustomerRepository define a persistência do lado de escrita do agregado.
// Add apenas estagia o novo cliente na unidade de trabalho dona do repositório;
// ExistsByEmail enxerga também os clientes estagiados e ainda não persistidos
// (read-your-own-writes dentro do escopo da transação).
type CustomerRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Add(ctx context.Context, customer *Customer) error
}

// UnitOfWork orquestra "persistir agregados + anexar eventos + disparar a
// sincronização de leitura" como uma única fronteira de commit. Cada comando em
// voo possui a sua própria instância.
type UnitOfWork interface {
	Customers() CustomerRepository
	Commit(ctx context.Context) error
}

// UnitOfWorkFactory cria uma unidade de trabalho por comando.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

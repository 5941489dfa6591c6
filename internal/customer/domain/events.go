package domain

import (
	"time"

	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
)

// AggregateType identifica o agregado de cliente no log de eventos.
const AggregateType = "customer"

// CustomerRegistered carrega os dados do fato "cliente registrado": o
// suficiente para reconstruir a mudança a partir do log de eventos.
type CustomerRegistered struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Gender       Gender    `json:"gender"`
	Email        string    `json:"email"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	RegisteredAt time.Time `json:"registered_at"`
}

// customerRegisteredEvent é a implementação privada do evento de registro.
type customerRegisteredEvent struct {
	data CustomerRegistered
}

func (e customerRegisteredEvent) EventName() string {
	return "CustomerRegistered"
}

func (e customerRegisteredEvent) Payload() CustomerRegistered {
	return e.data
}

// NewCustomerRegisteredEvent cria um novo evento de cliente registrado.
func NewCustomerRegisteredEvent(data CustomerRegistered) pkgDomain.Event[CustomerRegistered] {
	return customerRegisteredEvent{data: data}
}

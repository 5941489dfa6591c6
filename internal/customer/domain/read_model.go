package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCustomerNotFound indica ausência do documento no read store.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerDocument é a projeção desnormalizada do cliente no read store.
// Pode estar defasada em relação ao armazenamento autoritativo e é
// reconstruível a partir dele ou do log de eventos.
type CustomerDocument struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Gender       string    `json:"gender"`
	Email        string    `json:"email"`
	DateOfBirth  string    `json:"date_of_birth"`
	RegisteredAt time.Time `json:"registered_at"`
}

// CustomerReadModel define o acesso ao read store orientado a documentos,
// chaveado pela identidade do agregado. Upsert é idempotente.
type CustomerReadModel interface {
	Upsert(ctx context.Context, doc CustomerDocument) error
	FindByID(ctx context.Context, id string) (CustomerDocument, error)
	FindAll(ctx context.Context) ([]CustomerDocument, error)
}

package domain

import "context"

// EventRecord é o registro durável de um evento de domínio no log.
type EventRecord struct {
	AggregateType string
	AggregateID   string
	EventName     string
	Payload       []byte
	TransactionID string
}

// EventLog é o armazenamento append-only de eventos de domínio, chaveado por
// agregado. Não existem operações de atualização ou remoção.
type EventLog interface {
	Append(ctx context.Context, record EventRecord) error
}

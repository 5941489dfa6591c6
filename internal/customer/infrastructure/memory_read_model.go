package infrastructure

import (
	"context"
	"sort"
	"sync"

	"github.com/mateusmacedo/go-crm/internal/customer/domain"
)

// MemoryCustomerReadModel é a implementação em memória do read store.
type MemoryCustomerReadModel struct {
	mu   sync.RWMutex
	docs map[string]domain.CustomerDocument
}

func NewMemoryCustomerReadModel() *MemoryCustomerReadModel {
	return &MemoryCustomerReadModel{
		docs: make(map[string]domain.CustomerDocument),
	}
}

func (m *MemoryCustomerReadModel) Upsert(ctx context.Context, doc domain.CustomerDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = doc
	return nil
}

func (m *MemoryCustomerReadModel) FindByID(ctx context.Context, id string) (domain.CustomerDocument, error) {
	if err := ctx.Err(); err != nil {
		return domain.CustomerDocument{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, found := m.docs[id]
	if !found {
		return domain.CustomerDocument{}, domain.ErrCustomerNotFound
	}
	return doc, nil
}

func (m *MemoryCustomerReadModel) FindAll(ctx context.Context) ([]domain.CustomerDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]domain.CustomerDocument, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

package infrastructure

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/mateusmacedo/go-crm/internal/customer/domain"
	"github.com/mateusmacedo/go-crm/pkg/application"
	"github.com/mateusmacedo/go-crm/pkg/infrastructure/readmodel"
)

const (
	customerKeyPrefix = "customer:"
	customerIndexKey  = "customers"
)

// RedisCustomerReadModel guarda a projeção de clientes como documentos no
// Redis, chaveados pela identidade do agregado, junto com um índice de ids
// para listagem. Upsert é idempotente: reaplicar o mesmo evento resulta no
// mesmo documento.
type RedisCustomerReadModel struct {
	client redis.UniversalClient
	codec  readmodel.Codec
	logger application.AppLogger
}

func NewRedisCustomerReadModel(client redis.UniversalClient, logger application.AppLogger) (*RedisCustomerReadModel, error) {
	codec, err := readmodel.CodecFor(CustomerProjectionName)
	if err != nil {
		return nil, err
	}

	return &RedisCustomerReadModel{
		client: client,
		codec:  codec,
		logger: logger,
	}, nil
}

func (m *RedisCustomerReadModel) Upsert(ctx context.Context, doc domain.CustomerDocument) error {
	data, err := m.codec.Marshal(doc)
	if err != nil {
		return err
	}

	pipe := m.client.TxPipeline()
	pipe.Set(ctx, customerKeyPrefix+doc.ID, data, 0)
	pipe.SAdd(ctx, customerIndexKey, doc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		application.LogError(ctx, m.logger, "failed to upsert customer document", err, map[string]interface{}{
			"customer_id": doc.ID,
		})
		return err
	}
	return nil
}

func (m *RedisCustomerReadModel) FindByID(ctx context.Context, id string) (domain.CustomerDocument, error) {
	data, err := m.client.Get(ctx, customerKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CustomerDocument{}, domain.ErrCustomerNotFound
	}
	if err != nil {
		return domain.CustomerDocument{}, err
	}

	var doc domain.CustomerDocument
	if err := m.codec.Unmarshal(data, &doc); err != nil {
		return domain.CustomerDocument{}, err
	}
	return doc, nil
}

func (m *RedisCustomerReadModel) FindAll(ctx context.Context) ([]domain.CustomerDocument, error) {
	ids, err := m.client.SMembers(ctx, customerIndexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = customerKeyPrefix + id
	}

	values, err := m.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	docs := make([]domain.CustomerDocument, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			// documento removido entre o SMembers e o MGet
			continue
		}
		var doc domain.CustomerDocument
		if err := m.codec.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

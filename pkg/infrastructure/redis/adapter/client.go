package adapter

import (
	"github.com/redis/go-redis/v9"
)

// NewRedisClient cria um cliente Redis compartilhado pelo read store e pelo
// transporte de eventos via Redis Streams.
func NewRedisClient(addr string) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})
}

package domain

// IDGenerator gera identidades para novos agregados.
type IDGenerator[T any] func() T

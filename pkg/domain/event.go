package domain

// Event representa um fato imutável ocorrido no domínio.
type Event[T any] interface {
	EventName() string
	Payload() T
}

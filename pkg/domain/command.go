package domain

// Command representa uma intenção de mudança de estado no sistema.
// O payload carrega os dados brutos informados pelo chamador.
type Command[T any] interface {
	CommandName() string
	Payload() T
}

package application

import (
	"github.com/mateusmacedo/go-crm/pkg/domain"
)

// DateOfBirthLayout é o formato aceito para a data de nascimento no comando.
const DateOfBirthLayout = "2006-01-02"

// RegisterCustomerData contém os dados brutos para registrar um cliente.
type RegisterCustomerData struct {
	FirstName   string `json:"first_name" validate:"required,min=2,max=100"`
	LastName    string `json:"last_name" validate:"required,min=2,max=100"`
	Gender      string `json:"gender" validate:"required,oneof=male female"`
	Email       string `json:"email" validate:"required,email"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
}

// registerCustomerCommand é uma implementação privada de um comando para registrar um cliente.
type registerCustomerCommand struct {
	data RegisterCustomerData
}

func (c registerCustomerCommand) CommandName() string {
	return "RegisterCustomer"
}

func (c registerCustomerCommand) Payload() RegisterCustomerData {
	return c.data
}

// NewRegisterCustomerCommand cria um novo comando para registrar um cliente.
func NewRegisterCustomerCommand(data RegisterCustomerData) domain.Command[RegisterCustomerData] {
	return registerCustomerCommand{data: data}
}

package application

import (
	"github.com/mateusmacedo/go-crm/pkg/domain"
)

// FindCustomerData contém os dados para consultar clientes na projeção de
// leitura. Um CustomerID vazio consulta todos os clientes.
type FindCustomerData struct {
	CustomerID string `json:"customer_id"`
}

// findCustomerQuery é uma implementação privada de uma consulta de clientes.
type findCustomerQuery struct {
	data FindCustomerData
}

func (q findCustomerQuery) QueryName() string {
	return "FindCustomer"
}

func (q findCustomerQuery) Payload() FindCustomerData {
	return q.data
}

// NewFindCustomerQuery cria uma nova consulta de clientes.
func NewFindCustomerQuery(data FindCustomerData) domain.Query[FindCustomerData] {
	return findCustomerQuery{data: data}
}

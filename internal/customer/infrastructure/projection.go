package infrastructure

import (
	"github.com/mateusmacedo/go-crm/pkg/infrastructure/readmodel"
)

// CustomerProjectionName identifica a projeção de clientes no registro global
// de contratos de serialização.
const CustomerProjectionName = "customer"

// RegisterProjections registra os contratos de serialização das projeções
// deste slice. Deve ser chamada uma única vez no bootstrap do processo, antes
// de qualquer tráfego no read store; chamadas repetidas são no-ops.
func RegisterProjections() {
	readmodel.Register(CustomerProjectionName, readmodel.JSONCodec{})
}

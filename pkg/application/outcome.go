package application

// OutcomeStatus classifica o resultado do tratamento de um comando.
type OutcomeStatus int

const (
	OutcomeSuccess OutcomeStatus = iota
	OutcomeValidationFailure
	OutcomeBusinessFailure
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSuccess:
		return "success"
	case OutcomeValidationFailure:
		return "validation_failure"
	case OutcomeBusinessFailure:
		return "business_failure"
	default:
		return "unknown"
	}
}

// FieldError descreve uma violação de validação em um campo do comando.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Outcome é o resultado etiquetado do tratamento de um comando.
// Exatamente uma variante é populada: sucesso com valor e mensagem,
// falha de validação com erros por campo, ou falha de negócio com mensagens.
type Outcome struct {
	Status         OutcomeStatus `json:"status"`
	Value          any           `json:"value,omitempty"`
	Message        string        `json:"message,omitempty"`
	FieldErrors    []FieldError  `json:"field_errors,omitempty"`
	BusinessErrors []string      `json:"business_errors,omitempty"`
}

// NewSuccessOutcome cria um resultado de sucesso com o valor produzido e uma mensagem fixa.
func NewSuccessOutcome(value any, message string) Outcome {
	return Outcome{Status: OutcomeSuccess, Value: value, Message: message}
}

// NewValidationFailureOutcome cria um resultado de falha de validação.
func NewValidationFailureOutcome(fieldErrors []FieldError) Outcome {
	return Outcome{Status: OutcomeValidationFailure, FieldErrors: fieldErrors}
}

// NewBusinessFailureOutcome cria um resultado de falha de regra de negócio.
func NewBusinessFailureOutcome(messages ...string) Outcome {
	return Outcome{Status: OutcomeBusinessFailure, BusinessErrors: messages}
}

func (o Outcome) IsSuccess() bool {
	return o.Status == OutcomeSuccess
}

func (o Outcome) IsValidationFailure() bool {
	return o.Status == OutcomeValidationFailure
}

func (o Outcome) IsBusinessFailure() bool {
	return o.Status == OutcomeBusinessFailure
}

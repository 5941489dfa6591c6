package application

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	pkgApp "github.com/mateusmacedo/go-crm/pkg/application"
)

// RegisterCustomerValidator valida a estrutura e as regras de domínio de um
// comando de registro antes de qualquer persistência. Sem I/O: um conjunto
// vazio de erros libera o comando para o pipeline de escrita.
type RegisterCustomerValidator struct {
	validate *validator.Validate
}

func NewRegisterCustomerValidator() *RegisterCustomerValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Os erros de campo são reportados com o nome exposto na tag json.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RegisterCustomerValidator{validate: validate}
}

// Validate devolve a lista ordenada de erros por campo, no máximo um por campo.
func (v *RegisterCustomerValidator) Validate(data RegisterCustomerData) []pkgApp.FieldError {
	var fieldErrors []pkgApp.FieldError

	if err := v.validate.Struct(data); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return []pkgApp.FieldError{{Field: "command", Message: "malformed command"}}
		}
		for _, fe := range validationErrors {
			fieldErrors = append(fieldErrors, pkgApp.FieldError{
				Field:   fe.Field(),
				Message: messageFor(fe),
			})
		}
	}

	// Regra de domínio: a data de nascimento não pode estar no futuro. Só é
	// avaliada quando o campo passou nas checagens estruturais, garantindo no
	// máximo um erro por campo.
	if dateOfBirth, err := time.Parse(DateOfBirthLayout, data.DateOfBirth); err == nil {
		if dateOfBirth.After(time.Now()) {
			fieldErrors = append(fieldErrors, pkgApp.FieldError{
				Field:   "date_of_birth",
				Message: "must not be a date in the future",
			})
		}
	}

	return fieldErrors
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s characters", fe.Param())
	case "email":
		return "must be a valid e-mail address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "datetime":
		return fmt.Sprintf("must be a valid date in the format %s", fe.Param())
	default:
		return fmt.Sprintf("is invalid (%s)", fe.Tag())
	}
}

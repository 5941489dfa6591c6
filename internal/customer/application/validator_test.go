package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-crm/internal/customer/application"
)

func validRegisterCustomerData() application.RegisterCustomerData {
	return application.RegisterCustomerData{
		FirstName:   "Ana",
		LastName:    "Silva",
		Gender:      "female",
		Email:       "ana@x.com",
		DateOfBirth: "1990-01-01",
	}
}

func TestValidateRegisterCustomerValidCommand(t *testing.T) {
	validator := application.NewRegisterCustomerValidator()

	fieldErrors := validator.Validate(validRegisterCustomerData())

	assert.Empty(t, fieldErrors)
}

func TestValidateRegisterCustomerEmptyCommand(t *testing.T) {
	validator := application.NewRegisterCustomerValidator()

	fieldErrors := validator.Validate(application.RegisterCustomerData{})

	require.Len(t, fieldErrors, 5)

	// um erro por campo violado, sem duplicatas
	seen := make(map[string]int)
	for _, fieldError := range fieldErrors {
		seen[fieldError.Field]++
		assert.NotEmpty(t, fieldError.Message)
	}
	for _, field := range []string{"first_name", "last_name", "gender", "email", "date_of_birth"} {
		assert.Equal(t, 1, seen[field], "expected exactly one error for %s", field)
	}
}

func TestValidateRegisterCustomerFieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*application.RegisterCustomerData)
		field  string
	}{
		{
			name:   "first name too short",
			mutate: func(d *application.RegisterCustomerData) { d.FirstName = "A" },
			field:  "first_name",
		},
		{
			name:   "invalid e-mail",
			mutate: func(d *application.RegisterCustomerData) { d.Email = "not-an-email" },
			field:  "email",
		},
		{
			name:   "gender outside enumeration",
			mutate: func(d *application.RegisterCustomerData) { d.Gender = "robot" },
			field:  "gender",
		},
		{
			name:   "malformed date of birth",
			mutate: func(d *application.RegisterCustomerData) { d.DateOfBirth = "01/01/1990" },
			field:  "date_of_birth",
		},
		{
			name: "date of birth in the future",
			mutate: func(d *application.RegisterCustomerData) {
				d.DateOfBirth = time.Now().AddDate(1, 0, 0).Format(application.DateOfBirthLayout)
			},
			field: "date_of_birth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := application.NewRegisterCustomerValidator()
			data := validRegisterCustomerData()
			tt.mutate(&data)

			fieldErrors := validator.Validate(data)

			require.Len(t, fieldErrors, 1)
			assert.Equal(t, tt.field, fieldErrors[0].Field)
		})
	}
}

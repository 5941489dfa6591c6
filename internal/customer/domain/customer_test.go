package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-crm/internal/customer/domain"
)

func TestNewCustomerRecordsRegisteredEvent(t *testing.T) {
	dateOfBirth := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	registeredAt := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	customer := domain.NewCustomer("id-1", "Ana", "Silva", domain.GenderFemale, "ana@x.com", dateOfBirth, registeredAt)

	require.Len(t, customer.PendingEvents(), 1)

	event := customer.PendingEvents()[0]
	assert.Equal(t, "CustomerRegistered", event.EventName())

	payload := event.Payload()
	assert.Equal(t, "id-1", payload.ID)
	assert.Equal(t, "Ana", payload.FirstName)
	assert.Equal(t, "Silva", payload.LastName)
	assert.Equal(t, domain.GenderFemale, payload.Gender)
	assert.Equal(t, "ana@x.com", payload.Email)
	assert.Equal(t, dateOfBirth, payload.DateOfBirth)
	assert.Equal(t, registeredAt, payload.RegisteredAt)
}

func TestCustomerClearPendingEvents(t *testing.T) {
	customer := domain.NewCustomer("id-1", "Ana", "Silva", domain.GenderFemale, "ana@x.com", time.Now().AddDate(-30, 0, 0), time.Now())

	customer.ClearPendingEvents()

	assert.Empty(t, customer.PendingEvents())
}

func TestNewCustomerStoresCanonicalEmail(t *testing.T) {
	customer := domain.NewCustomer("id-1", "Ana", "Silva", domain.GenderFemale, "Ana@X.com", time.Now().AddDate(-30, 0, 0), time.Now())

	assert.Equal(t, "ana@x.com", customer.Email)

	require.Len(t, customer.PendingEvents(), 1)
	assert.Equal(t, "ana@x.com", customer.PendingEvents()[0].Payload().Email)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@x.com", domain.NormalizeEmail("ANA@X.COM"))
	assert.Equal(t, "ana@x.com", domain.NormalizeEmail("ana@x.com"))
}

func TestCustomerFullName(t *testing.T) {
	customer := domain.NewCustomer("id-1", "Ana", "Silva", domain.GenderFemale, "ana@x.com", time.Now().AddDate(-30, 0, 0), time.Now())

	assert.Equal(t, "Ana Silva", customer.FullName())
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected domain.Gender
		ok       bool
	}{
		{name: "male", value: "male", expected: domain.GenderMale, ok: true},
		{name: "female", value: "female", expected: domain.GenderFemale, ok: true},
		{name: "mixed case rejected", value: "Female", expected: "", ok: false},
		{name: "upper case rejected", value: "MALE", expected: "", ok: false},
		{name: "unknown", value: "robot", expected: "", ok: false},
		{name: "empty", value: "", expected: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gender, ok := domain.ParseGender(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, gender)
		})
	}
}

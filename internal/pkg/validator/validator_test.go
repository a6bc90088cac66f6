package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2025-03-01"))
	assert.False(t, IsValidDate("01-03-2025"))
	assert.False(t, IsValidDate("2025-03-01T00:00:00Z"))
}

func TestIsValidDateTime(t *testing.T) {
	assert.True(t, IsValidDateTime("2025-03-01T09:00:00Z"))
	assert.True(t, IsValidDateTime("2025-03-01T09:00:00+07:00"))
	assert.False(t, IsValidDateTime("2025-03-01"))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("9f3b1c2a-4d5e-4f60-8a7b-123456789abc"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date_from", Message: "required"},
		{Field: "date_to", Message: "required"},
	}

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "required", m["date_from"])
	assert.Contains(t, errs.Error(), "date_from: required")
}

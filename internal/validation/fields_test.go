package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCreateFields() Fields {
	return Fields{
		"username": "a",
		"email":    "a@x.com",
		"phone":    "01234567890",
		"cnic":     "1234567890123",
		"password": "password1",
		"role":     "r1",
	}
}

func TestValidateCreate_Valid(t *testing.T) {
	assert.NoError(t, ValidateCreate(validCreateFields()))
}

func TestValidateCreate_MissingField(t *testing.T) {
	for _, name := range []string{"username", "email", "phone", "cnic", "password", "role"} {
		fields := validCreateFields()
		delete(fields, name)
		err := ValidateCreate(fields)
		assert.Error(t, err, name)
		assert.Contains(t, err.Error(), name)
	}
}

func TestValidateCreate_FormatViolations(t *testing.T) {
	cases := []struct {
		field string
		value any
	}{
		{"username", ""},
		{"email", "not-an-email"},
		{"email", "a b@x.com"},
		{"phone", "0123456789"},
		{"phone", "012345678901"},
		{"phone", "0123456789a"},
		{"cnic", "123456789012"},
		{"cnic", "1234567890abc"},
		{"password", "short"},
		{"role", ""},
		{"phone", 1234567890},
	}
	for _, tc := range cases {
		fields := validCreateFields()
		fields[tc.field] = tc.value
		assert.Error(t, ValidateCreate(fields), "%s=%v", tc.field, tc.value)
	}
}

func TestValidateUpdate_SubsetAllowed(t *testing.T) {
	assert.NoError(t, ValidateUpdate(Fields{"username": "b"}))
	assert.NoError(t, ValidateUpdate(Fields{"email": "b@x.com", "phone": "01234567891"}))
	assert.NoError(t, ValidateUpdate(Fields{}))
}

func TestValidateUpdate_UnknownField(t *testing.T) {
	err := ValidateUpdate(Fields{"nickname": "b"})
	assert.EqualError(t, err, "Invalid fields: nickname")

	err = ValidateUpdate(Fields{"nickname": "b", "age": 3, "username": "ok"})
	assert.EqualError(t, err, "Invalid fields: age, nickname")
}

func TestValidateUpdate_PresentFieldsValidated(t *testing.T) {
	assert.Error(t, ValidateUpdate(Fields{"password": "short"}))
	assert.Error(t, ValidateUpdate(Fields{"phone": "123"}))
	assert.Error(t, ValidateUpdate(Fields{"email": "nope"}))
	assert.Error(t, ValidateUpdate(Fields{"role": ""}))
}

func TestValidate_FailsFastFirstViolation(t *testing.T) {
	fields := validCreateFields()
	fields["email"] = "bad"
	fields["phone"] = "bad"
	err := ValidateCreate(fields)
	assert.EqualError(t, err, `"email" must be a valid email`)
}

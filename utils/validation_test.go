package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid registration passes", func(t *testing.T) {
		form := registrationForm{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "s3cret-pass",
		}

		assert.NoError(t, ValidateStruct(&form))
	})

	t.Run("missing name is reported by field", func(t *testing.T) {
		form := registrationForm{
			Email:    "alice@example.com",
			Password: "s3cret-pass",
		}

		err := ValidateStruct(&form)
		assert.Error(t, err)
		assert.True(t, IsValidationError(err))
		assert.Contains(t, GetValidationFields(err), "Name")
	})

	t.Run("malformed email is reported by field", func(t *testing.T) {
		form := registrationForm{
			Name:     "Alice",
			Email:    "alice-at-example",
			Password: "s3cret-pass",
		}

		err := ValidateStruct(&form)
		assert.Error(t, err)
		assert.Contains(t, GetValidationFields(err), "Email")
	})

	t.Run("short password is reported by field", func(t *testing.T) {
		form := registrationForm{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "short",
		}

		err := ValidateStruct(&form)
		assert.Error(t, err)
		assert.Contains(t, GetValidationFields(err), "Password")
	})

	t.Run("multiple failures collect all fields", func(t *testing.T) {
		form := registrationForm{Email: "alice-at-example"}

		err := ValidateStruct(&form)
		require.Error(t, err)

		validationErr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Equal(t, "Validation failed", validationErr.Message)
		assert.Contains(t, validationErr.Fields, "Name")
		assert.Contains(t, validationErr.Fields, "Email")
		assert.Contains(t, validationErr.Fields, "Password")
	})
}

func TestValidateUUID(t *testing.T) {
	tests := []struct {
		name      string
		uuid      string
		wantError bool
	}{
		{"valid user id", "550e8400-e29b-41d4-a716-446655440000", false},
		{"not a uuid", "admin@example.com", true},
		{"truncated", "550e8400-e29b-41d4", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUUID(tt.uuid)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		wantError bool
	}{
		{"plain", "admin@example.com", false},
		{"subdomain", "admin@auth.example.com", false},
		{"plus tag", "admin+staging@example.com", false},
		{"missing at sign", "admin.example.com", true},
		{"missing domain", "admin@", true},
		{"missing tld", "admin@example", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationErrorHelpers(t *testing.T) {
	t.Run("Error returns the message", func(t *testing.T) {
		err := &ValidationError{
			Message: "Validation failed",
			Fields:  map[string]string{"Email": "must be a valid email address"},
		}

		assert.Equal(t, "Validation failed", err.Error())
	})

	t.Run("IsValidationError distinguishes error kinds", func(t *testing.T) {
		assert.True(t, IsValidationError(&ValidationError{Message: "x"}))
		assert.False(t, IsValidationError(assert.AnError))
	})

	t.Run("GetValidationFields round-trips the field map", func(t *testing.T) {
		fields := map[string]string{
			"Email":    "must be a valid email address",
			"Password": "too short",
		}
		err := &ValidationError{Message: "Validation failed", Fields: fields}

		assert.Equal(t, fields, GetValidationFields(err))
		assert.Nil(t, GetValidationFields(assert.AnError))
	})
}

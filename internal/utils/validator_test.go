// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registrationFixture struct {
	Password string `validate:"strong_password"`
	Phone    string `validate:"indian_phone"`
	SKU      string `validate:"sku"`
}

func TestStrongPasswordValidation(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Kirana911", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoNumbersHere", false},
	}

	for _, tc := range cases {
		err := ValidateStruct(&registrationFixture{Password: tc.password, Phone: "9876543210", SKU: "SKU-1"})
		if tc.valid {
			assert.NoError(t, err, "password %q", tc.password)
		} else {
			assert.Error(t, err, "password %q", tc.password)
		}
	}
}

func TestIndianPhoneValidation(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"5876543210", false}, // mobile numbers start 6-9
		{"98765", false},
		{"98765432101", false},
	}

	for _, tc := range cases {
		err := ValidateStruct(&registrationFixture{Password: "Kirana911", Phone: tc.phone, SKU: "SKU-1"})
		if tc.valid {
			assert.NoError(t, err, "phone %q", tc.phone)
		} else {
			assert.Error(t, err, "phone %q", tc.phone)
		}
	}
}

func TestSKUValidation(t *testing.T) {
	cases := []struct {
		sku   string
		valid bool
	}{
		{"DAL-001", true},
		{"atta_5kg", true},
		{"has space", false},
		{"", false},
	}

	for _, tc := range cases {
		err := ValidateStruct(&registrationFixture{Password: "Kirana911", Phone: "9876543210", SKU: tc.sku})
		if tc.valid {
			assert.NoError(t, err, "sku %q", tc.sku)
		} else {
			assert.Error(t, err, "sku %q", tc.sku)
		}
	}
}

func TestGetValidationErrorsDescribesFailures(t *testing.T) {
	err := ValidateStruct(&registrationFixture{Password: "weak", Phone: "123", SKU: "ok"})
	errors := GetValidationErrors(err)

	assert.Len(t, errors, 2)
	fields := []string{errors[0].Field, errors[1].Field}
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "phone")
}

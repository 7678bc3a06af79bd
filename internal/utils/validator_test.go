// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type upiForm struct {
	ID string `validate:"required,upi"`
}

type cardForm struct {
	Expiry string `validate:"required,card_expiry"`
}

type passwordForm struct {
	Password string `validate:"required,strong_password"`
}

func TestUpiValidator(t *testing.T) {
	valid := []string{"rahul.k@okicici", "user_1@ybl", "a-b@paytm"}
	for _, id := range valid {
		assert.NoError(t, ValidateStruct(&upiForm{ID: id}), "upi %q", id)
	}

	invalid := []string{"a@ok", "", "nohandle", "handle@", "@bank", "handle@ok1"}
	for _, id := range invalid {
		assert.Error(t, ValidateStruct(&upiForm{ID: id}), "upi %q", id)
	}
}

func TestCardExpiryValidator(t *testing.T) {
	assert.NoError(t, ValidateStruct(&cardForm{Expiry: "09/27"}))
	assert.NoError(t, ValidateStruct(&cardForm{Expiry: "12/30"}))

	invalid := []string{"13/27", "00/27", "9/27", "09-27", "09/2027"}
	for _, exp := range invalid {
		assert.Error(t, ValidateStruct(&cardForm{Expiry: exp}), "expiry %q", exp)
	}
}

func TestStrongPasswordValidator(t *testing.T) {
	assert.NoError(t, ValidateStruct(&passwordForm{Password: "Str0ng!pass"}))

	invalid := []string{"short1!", "alllower1!", "ALLUPPER1!", "NoNumbers!", "NoSpecial1"}
	for _, pw := range invalid {
		assert.Error(t, ValidateStruct(&passwordForm{Password: pw}), "password %q", pw)
	}
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&upiForm{ID: "bad"})
	assert.Error(t, err)

	errs := GetValidationErrors(err)
	assert.Len(t, errs, 1)
	assert.Equal(t, "id", errs[0].Field)
	assert.Equal(t, "upi", errs[0].Tag)
	assert.Equal(t, "Invalid UPI ID format", errs[0].Message)
}

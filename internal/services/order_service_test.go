// internal/services/order_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/nexura/storefront/internal/models"
)

func TestNormalizeOrderID(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"#AB12CD34E", "#AB12CD34E"},
		{"ab12cd34e", "#AB12CD34E"},
		{"  #ab12cd34e  ", "#AB12CD34E"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeOrderID(tc.input), "input %q", tc.input)
	}
}

func TestMaskCard(t *testing.T) {
	assert.Nil(t, maskCard(nil))

	masked := maskCard(&models.PaymentCard{
		Number: "4111111111111111",
		Name:   "A Kumar",
		Expiry: "09/27",
	})
	assert.Equal(t, "**** **** **** 1111", masked.Number)
	assert.Equal(t, "A Kumar", masked.Name)
	assert.Equal(t, "09/27", masked.Expiry)

	// Short values pass through untouched rather than leaking a panic.
	short := maskCard(&models.PaymentCard{Number: "1234"})
	assert.Equal(t, "1234", short.Number)
}

func TestMaskCardDoesNotMutateInput(t *testing.T) {
	card := &models.PaymentCard{Number: "4111111111111111"}
	maskCard(card)
	assert.Equal(t, "4111111111111111", card.Number)
}

func TestLogEnqueueFailure(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	logEnqueueFailure("order_confirmation", "#AB12CD34E", nil)
	assert.Empty(t, hook.Entries)

	logEnqueueFailure("order_confirmation", "#AB12CD34E", errors.New("mail table unavailable"))
	assert.Len(t, hook.Entries, 1)

	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "order_confirmation", entry.Data["email"])
	assert.Equal(t, "#AB12CD34E", entry.Data["order_id"])
}

// internal/utils/crypto_test.go
package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^#[0-9A-Z]{9}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := GenerateOrderID()
		assert.NoError(t, err)
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}

	// 36^9 values; 50 draws colliding would mean the generator is broken.
	assert.Len(t, seen, 50)
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(32)
	assert.NoError(t, err)
	assert.Len(t, s, 32)
	assert.Regexp(t, regexp.MustCompile(`^[a-zA-Z0-9]+$`), s)
}

func TestHashStringIsDeterministic(t *testing.T) {
	a := HashString("nexura")
	b := HashString("nexura")
	c := HashString("nexurb")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

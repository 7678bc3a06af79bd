// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

const orderIDCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GenerateOrderID returns a customer-facing order number: "#" followed by
// nine uppercase base36 characters. Uniqueness is enforced by the caller
// against the orders table.
func GenerateOrderID() (string, error) {
	b := make([]byte, 9)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderIDCharset))))
		if err != nil {
			return "", err
		}
		b[i] = orderIDCharset[n.Int64()]
	}

	return "#" + string(b), nil
}

func HashString(input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

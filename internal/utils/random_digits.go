package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateRandomDigits returns a string of n cryptographically random decimal
// digits, left-padded with zeros. Used for the numeric part of transaction
// codes, where the digit space is large relative to expected volume.
func GenerateRandomDigits(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("digit count must be positive")
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("%0*d", n, v), nil
}

package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const tradeCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateTradeCode returns a short human-facing reference code printed on
// trade confirmations and vouchers. Ambiguous characters (0/O, 1/I) are
// excluded from the alphabet.
func GenerateTradeCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(tradeCodeAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		out[i] = tradeCodeAlphabet[n.Int64()]
	}
	return string(out), nil
}

// File: utils/code.go
package utils

import (
	"crypto/rand"
	"fmt"
)

// Ambiguous characters (0/O, 1/I/L) are left out so codes survive being read
// aloud or handwritten on a society notice board.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// RandomCode generates a short shareable code of the given length.
func RandomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomCodeLength(t *testing.T) {
	for _, n := range []int{1, 6, 8, 16} {
		code, err := RandomCode(n)
		require.NoError(t, err)
		assert.Len(t, code, n)
	}
}

// Codes are shared verbally and typed by hand, so the alphabet excludes
// look-alike characters (0/O, 1/I/L).
func TestRandomCodeAlphabet(t *testing.T) {
	code, err := RandomCode(256)
	require.NoError(t, err)

	for _, r := range code {
		assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected character %q", r)
	}
	for _, banned := range "0O1IL" {
		assert.NotContains(t, code, string(banned))
	}
}

func TestRandomCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := RandomCode(8)
		require.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45, "codes should be overwhelmingly unique")
}

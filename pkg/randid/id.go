// Package randid generates short random base-36 identifiers.
package randid

import (
	"math/rand/v2"
	"strings"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Base36 returns n random characters from [0-9a-z].
func Base36(n int) string {
	b := make([]byte, max(n, 0))
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// WithPrefix returns prefix followed by n random base-36 characters.
func WithPrefix(prefix string, n int) string {
	var sb strings.Builder
	sb.Grow(len(prefix) + n)
	sb.WriteString(prefix)
	sb.WriteString(Base36(n))
	return sb.String()
}

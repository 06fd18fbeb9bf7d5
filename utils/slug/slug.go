// Package slug generates the unguessable public identifiers for stored
// files. Slugs deliberately carry no trace of the original filename or the
// internal id, so the public URL leaks nothing about uploader or content.
package slug

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// MinLength is the smallest slug length accepted; 16 chars of base36 give
// roughly 82.7 bits of entropy.
const MinLength = 8

// Generate returns a random lowercase alphanumeric slug of the given length,
// drawn from crypto/rand.
func Generate(length int) (string, error) {
	if length < MinLength {
		return "", fmt.Errorf("slug length must be at least %d, got %d", MinLength, length)
	}
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random slug char: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}

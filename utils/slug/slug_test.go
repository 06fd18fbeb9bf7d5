package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minecrox-server/services/pack-api/utils/slug"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	for _, length := range []int{8, 16, 32} {
		s, err := slug.Generate(length)
		require.NoError(t, err)
		assert.Len(t, s, length)
		for _, r := range s {
			assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'),
				"unexpected slug character %q in %q", r, s)
		}
	}
}

func TestGenerate_RejectsShortLengths(t *testing.T) {
	for _, length := range []int{0, 1, 7} {
		_, err := slug.Generate(length)
		assert.Error(t, err)
	}
}

func TestGenerate_NoCollisions(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		s, err := slug.Generate(16)
		require.NoError(t, err)
		_, dup := seen[s]
		require.False(t, dup, "duplicate slug %q after %d generations", s, i)
		seen[s] = struct{}{}
	}
}

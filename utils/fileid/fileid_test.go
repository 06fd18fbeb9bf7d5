package fileid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducesValidIDs(t *testing.T) {
	id := New()

	assert.True(t, strings.HasPrefix(id, "mcx_"))
	assert.Equal(t, id, strings.ToLower(id))
	assert.True(t, IsValid(id))

	_, err := Parse(id)
	require.NoError(t, err)
}

func TestNewIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := New()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestIsValidRejectsGarbage(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("mcx_"))
	assert.False(t, IsValid("mcx_not-a-ulid"))
	assert.False(t, IsValid("01HQXW5NYBV0Z2N8W3TWKG7VGA")) // missing prefix
}

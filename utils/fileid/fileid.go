package fileid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyOnce sync.Once
	entropy     *ulid.MonotonicEntropy
)

func newEntropy() *ulid.MonotonicEntropy {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = ulid.Monotonic(rand.New(source), 0)
	})
	return entropy
}

// New returns an mcx_* ULID string used as the internal file identifier.
// The public URL never contains this id; see utils/slug.
func New() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	return "mcx_" + strings.ToLower(id.String())
}

// IsValid reports whether the string is an mcx_* ULID.
func IsValid(value string) bool {
	if !strings.HasPrefix(value, "mcx_") {
		return false
	}
	_, err := Parse(value)
	return err == nil
}

// Parse strips the mcx_ prefix and returns the ULID.
func Parse(value string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "mcx_")
	value = strings.TrimPrefix(value, "MCX_")
	return ulid.Parse(value)
}

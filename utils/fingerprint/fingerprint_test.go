package fingerprint_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"minecrox-server/services/pack-api/utils/fingerprint"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "socket peer only",
			remoteAddr: "203.0.113.7:51234",
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for first hop wins",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.1"},
			want:       "198.51.100.4",
		},
		{
			name:       "cloudflare header beats forwarded-for",
			remoteAddr: "10.0.0.1:80",
			headers: map[string]string{
				"CF-Connecting-IP": "192.0.2.99",
				"X-Forwarded-For":  "198.51.100.4",
			},
			want: "192.0.2.99",
		},
		{
			name:       "no address at all",
			remoteAddr: "",
			want:       "0.0.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, fingerprint.ClientIP(r))
		})
	}
}

func TestHash_DeterministicPerSecret(t *testing.T) {
	a := fingerprint.Hash("secret-a", "203.0.113.7")
	b := fingerprint.Hash("secret-a", "203.0.113.7")
	c := fingerprint.Hash("secret-b", "203.0.113.7")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
	assert.NotContains(t, a, "203.0.113.7")
}

func TestEqual(t *testing.T) {
	h := fingerprint.Hash("s", "v")
	assert.True(t, fingerprint.Equal(h, h))
	assert.False(t, fingerprint.Equal(h, fingerprint.Hash("s", "w")))
}

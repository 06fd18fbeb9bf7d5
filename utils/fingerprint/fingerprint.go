// Package fingerprint derives salted one-way hashes of client network
// addresses so abuse accounting never stores raw IPs.
package fingerprint

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the originating client address, preferring the
// Cloudflare header, then the first X-Forwarded-For hop, then the socket
// peer address.
func ClientIP(r *http.Request) string {
	if cf := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); cf != "" {
		return cf
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "0.0.0.0"
	}
	return host
}

// Hash returns the hex HMAC-SHA256 of value under secret.
func Hash(secret, value string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}

// FromRequest hashes the request's client IP.
func FromRequest(r *http.Request, secret string) string {
	return Hash(secret, ClientIP(r))
}

// Equal compares two hex digests in constant time.
func Equal(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

package middlewares

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"minecrox-server/services/pack-api/internal/infrastructure/metrics"
	"minecrox-server/services/pack-api/internal/interfaces/httpserver/responses"
	"minecrox-server/services/pack-api/utils/apperrors"
	"minecrox-server/services/pack-api/utils/fingerprint"
)

// Observe records request count and duration per route.
func Observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns a per-client token bucket middleware. Buckets refill one
// token per `every` up to `burst`, keyed by the client IP, and idle buckets
// are dropped after an hour.
func RateLimit(every time.Duration, burst int) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)

	const idleTTL = time.Hour

	return func(c *gin.Context) {
		key := fingerprint.ClientIP(c.Request)
		now := time.Now()

		mu.Lock()
		for k, cl := range clients {
			if now.Sub(cl.lastSeen) > idleTTL {
				delete(clients, k)
			}
		}
		cl, ok := clients[key]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(rate.Every(every), burst)}
			clients[key] = cl
		}
		cl.lastSeen = now
		allowed := cl.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, responses.ErrorResponse{
				Error:   string(apperrors.TypeTooManyRequests),
				Message: "rate limit exceeded, retry later",
			})
			return
		}
		c.Next()
	}
}

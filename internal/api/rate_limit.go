package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware bounds the inbound request rate with a shared
// token bucket.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			Fail(c, http.StatusTooManyRequests, T(c, "error.rate_limited"), nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"gamecatalog/internal/infrastructure/ratelimit"
	"gamecatalog/pkg/logger"
	"gamecatalog/pkg/response"
)

// RateLimit rejects requests from a client address once its bucket is empty.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			allowed, wait := limiter.Allow(ip)
			if !allowed {
				logger.Warn("RATE LIMIT: blocked request from IP %s (retry in %v)", ip, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return c.JSON(http.StatusTooManyRequests, response.Response{
					Success:   false,
					Timestamp: time.Now().UTC().Format(time.RFC3339),
					Error: &response.ErrorInfo{
						Code:    "RATE_LIMITED",
						Message: "Rate limit exceeded",
					},
				})
			}
			return next(c)
		}
	}
}

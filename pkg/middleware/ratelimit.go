package middleware

import (
	"net"
	"net/http"

	"field-booking/pkg/ratelimit"
	"field-booking/pkg/utils"

	"go.uber.org/zap"
)

// RateLimit limits requests per client IP. If the limiter backend fails the
// request is let through and the failure logged.
func RateLimit(limiter ratelimit.Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("Rate limiter unavailable", zap.Error(err), zap.String("ip", key))
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				logger.Warn("Rate limit exceeded", zap.String("ip", key), zap.String("path", r.URL.Path))
				utils.ResponseTooManyRequests(w, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

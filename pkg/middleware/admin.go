package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"field-booking/pkg/apperror"
	"field-booking/pkg/utils"

	"go.uber.org/zap"
)

// AdminPolicy decides whether a request credential carries the admin capability.
type AdminPolicy interface {
	Authorize(credential string) error
}

// StaticTokenPolicy grants admin to exactly one shared bearer token.
type StaticTokenPolicy struct {
	token []byte
}

func NewStaticTokenPolicy(token string) *StaticTokenPolicy {
	return &StaticTokenPolicy{token: []byte(token)}
}

func (p *StaticTokenPolicy) Authorize(credential string) error {
	if len(p.token) == 0 || credential == "" {
		return apperror.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(credential), p.token) != 1 {
		return apperror.ErrUnauthorized
	}
	return nil
}

// AdminGate rejects any request whose bearer credential the policy refuses.
// The wrapped handler never runs for a rejected request.
func AdminGate(policy AdminPolicy, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, _ := bearerToken(r.Header.Get("Authorization"))

			if err := policy.Authorize(credential); err != nil {
				logger.Warn("Admin access denied",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseUnauthorized(w, "unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bakuworry/internal/callable"
	"bakuworry/internal/domain"
	"bakuworry/internal/service"

	"go.uber.org/zap"
)

// AttestationHeader carries the attestation token on worry calls
const AttestationHeader = "X-Baku-Attestation"

type contextKey int

const callerKey contextKey = iota

// Authenticator resolves identity tokens to uids
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// AttestationVerifier checks attestation tokens
type AttestationVerifier interface {
	Verify(token string) error
}

// CallerFromContext returns the caller attached by CallerMiddleware
func CallerFromContext(ctx context.Context) service.Caller {
	if c, ok := ctx.Value(callerKey).(service.Caller); ok {
		return c
	}
	return service.Caller{}
}

// CallerMiddleware resolves the identity and attestation of the request.
// It never rejects on missing credentials; the worry service decides.
func CallerMiddleware(auth Authenticator, attestation AttestationVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var caller service.Caller

			if token := bearerToken(r); token != "" {
				uid, err := auth.Authenticate(r.Context(), token)
				switch {
				case err == nil:
					caller.UID = uid
				case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUnknownIdentity):
					logger.Info("Rejected identity token", zap.Error(err))
				default:
					logger.Error("Failed to authenticate caller", zap.Error(err))
					callable.WriteError(w, domain.NewCallError(domain.CodeInternal, domain.InternalMessage))
					return
				}
			}

			if token := r.Header.Get(AttestationHeader); token != "" {
				if err := attestation.Verify(token); err != nil {
					logger.Info("Rejected attestation token", zap.Error(err))
				} else {
					caller.Attested = true
				}
			}

			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

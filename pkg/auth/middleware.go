package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/observability"
)

// Middleware creates HTTP middleware from an AuthChain and optional RateLimiter.
// It checks the bypass list, runs authentication, and optionally enforces
// rate limits before handing the request on with the identity in its context.
func Middleware(chain *AuthChain, limiter RateLimiter, bypassEndpoints []string) func(http.Handler) http.Handler {
	bypass := make(map[string]bool, len(bypassEndpoints))
	for _, ep := range bypassEndpoints {
		bypass[ep] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypass[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			result := chain.Authenticate(r.Context(), r)

			if result.Decision != Yes || result.Identity == nil {
				slog.Warn("authentication failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", result.Err,
				)
				writeError(w, http.StatusUnauthorized, api.NewInvalidRequestError("authorization", "authentication required"))
				return
			}

			if result.Identity.Subject == "" {
				slog.Error("authenticator returned identity with empty subject")
				writeError(w, http.StatusInternalServerError, api.NewServerError("internal authentication error"))
				return
			}

			slog.Debug("authentication succeeded",
				"subject", result.Identity.Subject,
				"path", r.URL.Path,
			)

			if limiter != nil {
				if err := limiter.Allow(r.Context(), result.Identity); err != nil {
					slog.Warn("rate limit exceeded",
						"subject", result.Identity.Subject,
						"tier", result.Identity.ServiceTier,
					)
					observability.RateLimitRejectedTotal.WithLabelValues(tierOf(result.Identity)).Inc()
					writeError(w, http.StatusTooManyRequests, api.NewTooManyRequestsError("rate limit exceeded"))
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(SetIdentity(r.Context(), result.Identity)))
		})
	}
}

// RequireScope rejects requests whose identity lacks the given scope.
func RequireScope(scope string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFromContext(r.Context())
		if id != nil && !id.Allows(scope) {
			writeError(w, http.StatusForbidden, api.NewInvalidRequestError("scope", ErrForbidden.Error()+": missing scope "+scope))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DefaultBypassEndpoints lists endpoints that skip authentication.
var DefaultBypassEndpoints = []string{"/healthz", "/readyz", "/metrics"}

func writeError(w http.ResponseWriter, status int, apiErr *api.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: apiErr})
}

func tierOf(id *Identity) string {
	if id.ServiceTier == "" {
		return "default"
	}
	return id.ServiceTier
}

package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"simple-cms/internal/handler/http/respond"
	"simple-cms/internal/observability/logging"
)

// unauthorizedBody is the same for every failure so the response does not
// reveal whether the header was absent or wrong.
var unauthorizedBody = map[string]string{"error": "unauthorized"}

// Authz returns middleware that requires a principal carrying the token
// claim on every request not covered by rules.
//
// Failures respond 401 with a generic body and a WWW-Authenticate challenge;
// the reason is only logged. On success the principal is added to the request
// context for PrincipalFromContext.
func Authz(authn Authenticator, rules []PublicRule, logger *slog.Logger) func(http.Handler) http.Handler {
	public := NewPublicMatcher(rules)
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			if public.IsPublic(r) {
				RecordAuthRequest(resultPublic)
				next.ServeHTTP(w, r)
				return
			}

			principal, err := authn.Authenticate(r)
			if err == nil && !principal.HasClaim(ClaimToken) {
				err = ErrInvalidCredential
			}
			RecordAuthDuration(time.Since(start).Seconds())

			if err != nil {
				result := resultInvalid
				if errors.Is(err, ErrMissingCredential) {
					result = resultMissing
				}
				RecordAuthRequest(result)
				logging.WithRequestID(r.Context(), logger).Warn("authentication failed",
					slog.String("reason", err.Error()),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))

				w.Header().Set("WWW-Authenticate", authn.Scheme())
				respond.JSON(w, http.StatusUnauthorized, unauthorizedBody)
				return
			}

			RecordAuthRequest(resultSuccess)
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

package http

import (
	"net/http"

	"simple-cms/internal/handler/http/respond"
)

const (
	maxCredentialHeaderBytes = 8 << 10
	maxPathBytes             = 2 << 10
)

// InputValidation rejects oversized credential headers (Authorization and
// each name in credentialHeaders) with 400 and paths over 2KB with 414.
// Bodies are capped separately by LimitRequestBody.
func InputValidation(credentialHeaders ...string) Middleware {
	headers := append([]string{"Authorization"}, credentialHeaders...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, name := range headers {
				if len(r.Header.Get(name)) > maxCredentialHeaderBytes {
					respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "credential header too large"})
					return
				}
			}

			if len(r.URL.Path) > maxPathBytes {
				respond.JSON(w, http.StatusRequestURITooLong, map[string]string{"error": "URI too long"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputValidation(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	h := InputValidation("SuperToken")(next)

	tests := []struct {
		name     string
		path     string
		headers  map[string]string
		body     string
		wantCode int
		wantBody string
	}{
		{name: "ok", path: "/api/articles", wantCode: http.StatusOK},
		{
			name:     "token header at limit",
			path:     "/api/articles",
			headers:  map[string]string{"SuperToken": strings.Repeat("a", 8192)},
			wantCode: http.StatusOK,
		},
		{
			name:     "token header too large",
			path:     "/api/articles",
			headers:  map[string]string{"SuperToken": strings.Repeat("a", 8193)},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"credential header too large"}`,
		},
		{
			name:     "authorization header too large",
			path:     "/api/articles",
			headers:  map[string]string{"Authorization": strings.Repeat("a", 8193)},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "path too long",
			path:     "/" + strings.Repeat("p", 2048),
			wantCode: http.StatusRequestURITooLong,
			wantBody: `{"error":"URI too long"}`,
		},
		{
			name:     "large body is left to LimitRequestBody",
			path:     "/api/articles",
			body:     strings.Repeat("x", 2<<20),
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

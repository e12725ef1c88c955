package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authHandler(keys []string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return APIKeyAuth(keys)(next)
}

func TestAPIKeyAuthOpenInstance(t *testing.T) {
	h := authHandler(nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze_logs", nil))
	if w.Code != http.StatusOK {
		t.Errorf("open instance status = %d", w.Code)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	h := authHandler([]string{"secret-key"})

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/analyze_logs", "", http.StatusUnauthorized},
		{"wrong key", "/analyze_logs", "Bearer nope", http.StatusUnauthorized},
		{"bearer format", "/analyze_logs", "Bearer secret-key", http.StatusOK},
		{"bare key", "/analyze_logs", "secret-key", http.StatusOK},
		{"health is public", "/health", "", http.StatusOK},
		{"landing page is public", "/", "", http.StatusOK},
		{"static is public", "/static/index.html", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

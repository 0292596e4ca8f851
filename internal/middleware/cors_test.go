package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name            string
		origins         []string
		requestOrigin   string
		wantAllowOrigin string
		wantCredentials string
	}{
		{
			name:            "wildcard echoes origin without credentials",
			origins:         []string{"*"},
			requestOrigin:   "https://app.example",
			wantAllowOrigin: "https://app.example",
			wantCredentials: "",
		},
		{
			name:            "explicit origin gets credentials",
			origins:         []string{"https://app.example"},
			requestOrigin:   "https://app.example",
			wantAllowOrigin: "https://app.example",
			wantCredentials: "true",
		},
		{
			name:            "null origin allowed without credentials",
			origins:         []string{"null"},
			requestOrigin:   "null",
			wantAllowOrigin: "null",
			wantCredentials: "",
		},
		{
			name:            "unlisted origin gets no headers",
			origins:         []string{"https://app.example"},
			requestOrigin:   "https://evil.example",
			wantAllowOrigin: "",
			wantCredentials: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/carbon", nil)
			req.Header.Set("Origin", tt.requestOrigin)
			rec := httptest.NewRecorder()

			CORS(tt.origins)(next).ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllowOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllowOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCredentials {
				t.Errorf("Allow-Credentials = %q, want %q", got, tt.wantCredentials)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not run for preflight")
	})

	req := httptest.NewRequest(http.MethodOptions, "/carbon", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()

	CORS([]string{"*"})(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusOK)
	}
}

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowedOrigin(t *testing.T) {
	h := CORS("https://sagecrest.example,https://dash.sagecrest.example")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	req.Header.Set("Origin", "https://dash.sagecrest.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.sagecrest.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Headers"), "x-admin-password") {
		t.Errorf("allow headers = %q", rec.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	h := CORS("https://sagecrest.example")(okHandler())

	// A state-changing request from an unknown origin is rejected.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("POST status = %d, want 403", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("Access-Control-Allow-Origin set for disallowed origin")
	}

	// A GET from the same origin passes; the browser drops the response
	// on its own since no CORS headers are returned.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := CORS("https://sagecrest.example")(okHandler())

	for _, origin := range []string{"https://sagecrest.example", "https://evil.example", ""} {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/goals", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("preflight from %q status = %d, want 204", origin, rec.Code)
		}
	}
}

func TestCORSNoOriginPasses(t *testing.T) {
	h := CORS("https://sagecrest.example")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("same-origin POST status = %d, want 200", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.Header().Get("X-Request-Id")
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("X-Request-Id not set")
	}
	if rec.Header().Get("X-Request-Id") != seen {
		t.Error("response header does not match")
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("Content-Security-Policy not set")
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sagecrest/pulsedash/internal/domain/credential"
)

type stubVerifier struct {
	result credential.VerifyResult
	err    error
}

func (s *stubVerifier) Verify(context.Context, string) (credential.VerifyResult, error) {
	return s.result, s.err
}

func okHandler(t *testing.T, sawName *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*sawName = AdminNameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminAuthMissingHeader(t *testing.T) {
	var name string
	h := AdminAuth(&stubVerifier{})(okHandler(t, &name))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminAuthInvalidPassword(t *testing.T) {
	var name string
	h := AdminAuth(&stubVerifier{result: credential.VerifyResult{Valid: false}})(okHandler(t, &name))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(PasswordHeader, "wrong")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"access denied"}` {
		t.Errorf("body = %s", body)
	}
}

func TestAdminAuthNonAdminCredential(t *testing.T) {
	var name string
	v := &stubVerifier{result: credential.VerifyResult{Valid: true, IsAdmin: false, Name: "Viewer"}}
	h := AdminAuth(v)(okHandler(t, &name))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(PasswordHeader, "correct-but-not-admin")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"access denied"}` {
		t.Errorf("body = %s", body)
	}
	if name != "" {
		t.Errorf("name leaked into context: %q", name)
	}
}

func TestAdminAuthStorageError(t *testing.T) {
	var name string
	h := AdminAuth(&stubVerifier{err: errors.New("pool closed")})(okHandler(t, &name))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(PasswordHeader, "whatever")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestAdminAuthValid(t *testing.T) {
	var name string
	v := &stubVerifier{result: credential.VerifyResult{Valid: true, IsAdmin: true, Name: "Ops"}}
	h := AdminAuth(v)(okHandler(t, &name))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(PasswordHeader, "correct")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if name != "Ops" {
		t.Errorf("injected name = %q, want Ops", name)
	}
}

func TestAPIKeyDisabled(t *testing.T) {
	h := APIKey("")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with key check disabled", rec.Code)
	}
}

func TestAPIKeyMismatch(t *testing.T) {
	h := APIKey("secret")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "nope")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAPIKeyMatch(t *testing.T) {
	h := APIKey("secret")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "secret")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

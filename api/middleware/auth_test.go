package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/bidhaus/bidhaus-backend/pkg/auth"
	"github.com/bidhaus/bidhaus-backend/pkg/auth/session"
	"github.com/bidhaus/bidhaus-backend/pkg/config"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
)

type fakeSessionChecker struct {
	has bool
	err error
}

func (f fakeSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return f.has, f.err
}

func authTestJWT() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "bidhaus",
		ExpirationMinutes: 15,
	}
}

func mintTestToken(t *testing.T, userID uuid.UUID, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(authTestJWT(), time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, checker session.AccessSessionChecker, authorization string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var seen *http.Request
	handler := Auth(authTestJWT(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp, seen
}

func TestAuthSeedsContext(t *testing.T) {
	userID := uuid.New()
	token := mintTestToken(t, userID, enums.UserRoleAdmin)

	resp, seen := runAuth(t, fakeSessionChecker{has: true}, "Bearer "+token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if seen == nil {
		t.Fatal("handler was not reached")
	}
	if got := UserIDFromContext(seen.Context()); got != userID.String() {
		t.Fatalf("user id not seeded, got %q", got)
	}
	if got := RoleFromContext(seen.Context()); got != string(enums.UserRoleAdmin) {
		t.Fatalf("role not seeded, got %q", got)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	resp, seen := runAuth(t, fakeSessionChecker{has: true}, "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if seen != nil {
		t.Fatal("handler must not run without credentials")
	}
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	resp, _ := runAuth(t, fakeSessionChecker{has: true}, "Bearer not.a.token")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	token := mintTestToken(t, uuid.New(), enums.UserRoleUser)
	resp, seen := runAuth(t, fakeSessionChecker{has: false}, "Bearer "+token)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session got %d", resp.Code)
	}
	if seen != nil {
		t.Fatal("handler must not run with a revoked session")
	}
}

func TestAuthSessionCheckFailure(t *testing.T) {
	token := mintTestToken(t, uuid.New(), enums.UserRoleUser)
	resp, _ := runAuth(t, fakeSessionChecker{err: errors.New("redis down")}, "Bearer "+token)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the session store is down got %d", resp.Code)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(string(enums.UserRoleAdmin), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	asUser := httptest.NewRequest(http.MethodGet, "/admin", nil)
	asUser = asUser.WithContext(WithRole(asUser.Context(), string(enums.UserRoleUser)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, asUser)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	asAdmin := httptest.NewRequest(http.MethodGet, "/admin", nil)
	asAdmin = asAdmin.WithContext(WithRole(asAdmin.Context(), string(enums.UserRoleAdmin)))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, asAdmin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

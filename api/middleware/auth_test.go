package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/easybody/easybody-backend/internal/users"
	"github.com/easybody/easybody-backend/pkg/auth"
	"github.com/easybody/easybody-backend/pkg/config"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/google/uuid"
)

func testJWTCfg() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
}

type stubIdentity struct {
	bySub map[string]*users.UserDTO
}

func (s stubIdentity) ResolveSubject(_ context.Context, sub string) (*users.UserDTO, error) {
	if user, ok := s.bySub[sub]; ok {
		return user, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown subject")
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, subject string) string {
	t.Helper()
	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{Subject: subject})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func registeredUser(role enums.UserRole) (stubIdentity, string, uuid.UUID) {
	userID := uuid.New()
	subject := "idp|" + userID.String()
	identity := stubIdentity{bySub: map[string]*users.UserDTO{
		subject: {ID: userID, Role: role, IsActive: true},
	}}
	return identity, subject, userID
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWTCfg(), stubIdentity{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWTCfg(), stubIdentity{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsUnknownSubject(t *testing.T) {
	cfg := testJWTCfg()
	token := mintTestToken(t, cfg, "idp|nobody")

	handler := Auth(cfg, stubIdentity{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsDisabledAccount(t *testing.T) {
	cfg := testJWTCfg()
	identity, subject, _ := registeredUser(enums.UserRoleClient)
	identity.bySub[subject].IsActive = false
	token := mintTestToken(t, cfg, subject)

	handler := Auth(cfg, identity, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsResolvedIdentity(t *testing.T) {
	cfg := testJWTCfg()
	identity, subject, userID := registeredUser(enums.UserRoleGymStaff)
	token := mintTestToken(t, cfg, subject)

	var captured struct {
		user string
		role string
	}
	handler := Auth(cfg, identity, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.user = UserIDFromContext(r.Context())
		captured.role = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.user != userID.String() {
		t.Fatalf("expected resolved user id in context, got %q", captured.user)
	}
	if captured.role != string(enums.UserRoleGymStaff) {
		t.Fatalf("expected resolved role in context, got %q", captured.role)
	}
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	handler := OptionalAuth(testJWTCfg(), stubIdentity{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) != "" {
			t.Error("expected empty user id for anonymous request")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	handler := RequireRole(string(enums.UserRoleAdmin), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.UserRoleClient)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.UserRoleAdmin)))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

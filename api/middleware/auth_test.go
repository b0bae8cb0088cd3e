package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/permataindah/storefront-backend/pkg/auth"
	"github.com/permataindah/storefront-backend/pkg/config"
	"github.com/permataindah/storefront-backend/pkg/db/models"
	"github.com/permataindah/storefront-backend/pkg/enums"
)

type stubUserLoader struct {
	users map[uuid.UUID]*models.User
	err   error
}

func (s stubUserLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "permata-test",
		ExpirationMinutes: 60,
		CookieName:        "auth_token",
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, user *models.User) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func activeUser(role enums.UserRole) *models.User {
	return &models.User{
		ID:     uuid.New(),
		Name:   "Siti Rahma",
		Email:  "siti@example.com",
		Role:   role,
		Active: true,
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	cfg := testJWTConfig()
	handler := Auth(cfg, stubUserLoader{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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
	cfg := testJWTConfig()
	handler := Auth(cfg, stubUserLoader{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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

func TestAuthRejectsUnknownUser(t *testing.T) {
	cfg := testJWTConfig()
	user := activeUser(enums.UserRoleUser)
	token := mintTestToken(t, cfg, user)

	handler := Auth(cfg, stubUserLoader{users: map[uuid.UUID]*models.User{}}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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
	cfg := testJWTConfig()
	user := activeUser(enums.UserRoleUser)
	user.Active = false
	token := mintTestToken(t, cfg, user)

	loader := stubUserLoader{users: map[uuid.UUID]*models.User{user.ID: user}}
	handler := Auth(cfg, loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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

func TestAuthAllowsBearerToken(t *testing.T) {
	cfg := testJWTConfig()
	user := activeUser(enums.UserRoleAdmin)
	token := mintTestToken(t, cfg, user)

	var captured struct {
		userID uuid.UUID
		role   enums.UserRole
		admin  bool
	}
	loader := stubUserLoader{users: map[uuid.UUID]*models.User{user.ID: user}}
	handler := Auth(cfg, loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.userID = UserIDFromContext(r.Context())
		captured.role = RoleFromContext(r.Context())
		captured.admin = IsAdmin(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.userID != user.ID {
		t.Fatalf("expected user %s got %s", user.ID, captured.userID)
	}
	if captured.role != enums.UserRoleAdmin {
		t.Fatalf("expected admin role got %s", captured.role)
	}
	if !captured.admin {
		t.Fatal("expected admin context flag")
	}
}

func TestAuthReadsCookieBeforeHeader(t *testing.T) {
	cfg := testJWTConfig()
	user := activeUser(enums.UserRoleUser)
	token := mintTestToken(t, cfg, user)

	var captured uuid.UUID
	loader := stubUserLoader{users: map[uuid.UUID]*models.User{user.ID: user}}
	handler := Auth(cfg, loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: token})
	req.Header.Set("Authorization", "Bearer garbage")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured != user.ID {
		t.Fatalf("expected user %s got %s", user.ID, captured)
	}
}

func TestRequireAdminBlocksShoppers(t *testing.T) {
	user := activeUser(enums.UserRoleUser)
	handler := RequireAdmin(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), user))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	admin := activeUser(enums.UserRoleAdmin)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), admin))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

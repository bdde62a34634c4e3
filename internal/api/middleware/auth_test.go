package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
	"github.com/rutamundi/backoffice/internal/core/session"
)

type stubAdvisorRepo struct {
	advisors map[string]*domain.Advisor
}

func (s *stubAdvisorRepo) Create(ctx context.Context, a *domain.Advisor) (*domain.Advisor, error) {
	return a, nil
}

func (s *stubAdvisorRepo) FindByID(ctx context.Context, id string) (*domain.Advisor, error) {
	a, ok := s.advisors[id]
	if !ok {
		return nil, domain.ErrAdvisorNotFound
	}
	return a, nil
}

func (s *stubAdvisorRepo) FindByEmail(ctx context.Context, email string) (*domain.Advisor, error) {
	for _, a := range s.advisors {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, domain.ErrAdvisorNotFound
}

func (s *stubAdvisorRepo) Update(ctx context.Context, id string, update ports.AdvisorUpdate) error {
	return nil
}

func (s *stubAdvisorRepo) List(ctx context.Context) ([]domain.Advisor, error) {
	return nil, nil
}

func gateRequest(t *testing.T, path, cookieValue string, repo ports.AdvisorRepository, codec *session.Codec) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := SessionGate(codec, repo)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestSessionGate_NoCookieRedirects(t *testing.T) {
	codec := session.NewCodec("secret")
	rec, called := gateRequest(t, "/admin/clients", "", &stubAdvisorRepo{}, codec)

	if called {
		t.Fatalf("next should not run without a session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("expected redirect to /admin/login, got %q", loc)
	}
}

func TestSessionGate_ValidTokenPasses(t *testing.T) {
	codec := session.NewCodec("secret")
	token, err := codec.Issue("adv_1", "ana@rutamundi.example", domain.RoleAgent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, called := gateRequest(t, "/admin/clients", token, &stubAdvisorRepo{}, codec)
	if !called {
		t.Fatalf("next not called for valid session")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionGate_TamperedTokenRedirects(t *testing.T) {
	codec := session.NewCodec("secret")
	token, err := codec.Issue("adv_1", "ana@rutamundi.example", domain.RoleAgent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	tampered := token[:len(token)-3] + "xyz"

	rec, called := gateRequest(t, "/admin/clients", tampered, &stubAdvisorRepo{}, codec)
	if called {
		t.Fatalf("next should not run with a tampered token")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}

func TestSessionGate_ExpiredTokenRedirects(t *testing.T) {
	claims := session.Claims{
		AdvisorID: "adv_1",
		Email:     "ana@rutamundi.example",
		Role:      domain.RoleAgent,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-13 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	codec := session.NewCodec("secret")
	rec, called := gateRequest(t, "/admin/clients", expired, &stubAdvisorRepo{}, codec)
	if called {
		t.Fatalf("next should not run with an expired token")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}

func TestSessionGate_LoginPathIsPublic(t *testing.T) {
	codec := session.NewCodec("secret")
	rec, called := gateRequest(t, "/admin/login", "", &stubAdvisorRepo{}, codec)
	if !called {
		t.Fatalf("login page must be reachable without a session")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionGate_LogoutPathIsPublic(t *testing.T) {
	// Logging out with an absent or stale cookie must still reach the
	// handler so the cookie gets cleared instead of bouncing to login.
	codec := session.NewCodec("secret")

	rec, called := gateRequest(t, "/admin/logout", "", &stubAdvisorRepo{}, codec)
	if !called {
		t.Fatalf("logout must be reachable without a session")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	claims := session.Claims{
		AdvisorID: "adv_1",
		Email:     "ana@rutamundi.example",
		Role:      domain.RoleAgent,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-13 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, called := gateRequest(t, "/admin/logout", expired, &stubAdvisorRepo{}, codec); !called {
		t.Fatalf("logout must be reachable with an expired session")
	}
}

func TestSessionGate_NonAdminPathIsPublic(t *testing.T) {
	codec := session.NewCodec("secret")
	_, called := gateRequest(t, "/api/contact", "", &stubAdvisorRepo{}, codec)
	if !called {
		t.Fatalf("paths outside /admin must not be gated")
	}
}

func TestSessionGate_LegacyTokenResolvesRole(t *testing.T) {
	codec := session.NewCodec("secret")
	token, err := codec.Issue("adv_1", "ana@rutamundi.example", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	repo := &stubAdvisorRepo{advisors: map[string]*domain.Advisor{
		"adv_1": {ID: "adv_1", Email: "ana@rutamundi.example", Role: domain.RoleManagement},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/clients", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SessionGate(codec, repo)(func(c echo.Context) error {
		if got, _ := c.Get("role").(string); got != string(domain.RoleManagement) {
			t.Fatalf("expected resolved role %q, got %q", domain.RoleManagement, got)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionGate_LegacyTokenAdvisorGoneRedirects(t *testing.T) {
	codec := session.NewCodec("secret")
	token, err := codec.Issue("adv_missing", "gone@rutamundi.example", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, called := gateRequest(t, "/admin/clients", token, &stubAdvisorRepo{}, codec)
	if called {
		t.Fatalf("session for a deleted advisor must not pass")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}

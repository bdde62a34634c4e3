package session

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

func TestCodec_IssueAndVerify(t *testing.T) {
	codec := NewCodec("test-secret")

	token, err := codec.Issue("adv_1", "ana@agency.test", domain.RoleManagement)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims := codec.Verify(token)
	if claims == nil {
		t.Fatalf("expected valid claims, got nil")
	}
	if claims.AdvisorID != "adv_1" || claims.Email != "ana@agency.test" {
		t.Fatalf("unexpected identity: %+v", claims)
	}
	if claims.Role != domain.RoleManagement {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if !claims.HasRole() {
		t.Fatalf("HasRole should be true")
	}

	window := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if window != TTL {
		t.Fatalf("expected %s expiry window, got %s", TTL, window)
	}
}

func TestCodec_Expired(t *testing.T) {
	// Sign an already-expired token with the same secret and claim shape.
	now := time.Now()
	claims := Claims{
		AdvisorID: "adv_1",
		Email:     "ana@agency.test",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-13 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Second)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if got := NewCodec("test-secret").Verify(token); got != nil {
		t.Fatalf("expected nil for expired token, got %+v", got)
	}
}

func TestCodec_Tampered(t *testing.T) {
	codec := NewCodec("test-secret")
	token, err := codec.Issue("adv_1", "ana@agency.test", domain.RoleAgent)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}

	// Flip one payload character; signature must no longer match.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if got := codec.Verify(tampered); got != nil {
		t.Fatalf("expected nil for tampered token, got %+v", got)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	token, err := NewCodec("secret-a").Issue("adv_1", "ana@agency.test", domain.RoleAgent)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if got := NewCodec("secret-b").Verify(token); got != nil {
		t.Fatalf("expected nil for wrong secret, got %+v", got)
	}
}

func TestCodec_Garbage(t *testing.T) {
	codec := NewCodec("test-secret")
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if got := codec.Verify(raw); got != nil {
			t.Fatalf("Verify(%q): expected nil, got %+v", raw, got)
		}
	}
}

func TestCodec_LegacyShapeWithoutRole(t *testing.T) {
	// Older tokens carry only advisorId and email.
	now := time.Now()
	claims := Claims{
		AdvisorID: "adv_legacy",
		Email:     "old@agency.test",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got := NewCodec("test-secret").Verify(token)
	if got == nil {
		t.Fatalf("legacy token must verify")
	}
	if got.HasRole() {
		t.Fatalf("legacy token must report missing role, got %q", got.Role)
	}
	if got.AdvisorID != "adv_legacy" {
		t.Fatalf("unexpected advisor id: %s", got.AdvisorID)
	}
}

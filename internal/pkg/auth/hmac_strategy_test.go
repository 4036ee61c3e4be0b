package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/comprae/marketplace/internal/domain/model"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func signedToken(s *HMACStrategy, payload string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(payload + ":" + s.sign(payload)))
}

func TestNewHMACStrategy_DefaultTTL(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.TTL() != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.TTL())
	}
}

func TestNewHMACStrategy_CustomTTL(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: 2 * time.Hour})
	if strategy.TTL() != 2*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.TTL())
	}
}

func TestHMACStrategy_IssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	want := model.Identity{UserID: 42, Role: model.RoleSeller}

	token, err := strategy.IssueToken(want)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	got, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestHMACStrategy_IssueRejectsBadIdentity(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	cases := []model.Identity{
		{UserID: 0, Role: model.RoleCustomer},
		{UserID: 3, Role: model.Role("ROOT")},
	}
	for _, identity := range cases {
		if _, err := strategy.IssueToken(identity); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %+v, got %v", identity, err)
		}
	}
}

func TestHMACStrategy_ParseMalformed(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	future := time.Now().Add(time.Minute).Unix()

	cases := map[string]string{
		"not base64":  "%%%",
		"wrong parts": base64.RawURLEncoding.EncodeToString([]byte("only:two")),
		"bad user":    signedToken(strategy, fmt.Sprintf("abc:CUSTOMER:%d", future)),
		"bad role":    signedToken(strategy, fmt.Sprintf("5:ROOT:%d", future)),
		"bad expiry":  signedToken(strategy, "5:CUSTOMER:soon"),
		"expired":     signedToken(strategy, fmt.Sprintf("5:CUSTOMER:%d", time.Now().Add(-time.Minute).Unix())),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestHMACStrategy_ParseTamperedRole(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(model.Identity{UserID: 7, Role: model.RoleCustomer})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		t.Fatalf("unexpected parts count: %d", len(parts))
	}
	parts[1] = string(model.RoleAdmin)
	tampered := base64.RawURLEncoding.EncodeToString([]byte(strings.Join(parts, ":")))
	if _, err := strategy.ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ExpiresAfterTTL(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewHMACStrategy("secret", Options{TTL: time.Hour, Now: fixedClock(issuedAt)})
	token, err := issuer.IssueToken(model.Identity{UserID: 9, Role: model.RoleCustomer})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	within := NewHMACStrategy("secret", Options{Now: fixedClock(issuedAt.Add(59 * time.Minute))})
	if _, err := within.ParseToken(token); err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}

	after := NewHMACStrategy("secret", Options{Now: fixedClock(issuedAt.Add(time.Hour))})
	if _, err := after.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_DifferentSecret(t *testing.T) {
	token, err := NewHMACStrategy("one", Options{}).IssueToken(model.Identity{UserID: 1, Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := NewHMACStrategy("two", Options{}).ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_Name(t *testing.T) {
	if name := NewHMACStrategy("secret", Options{}).Name(); name != "hmac" {
		t.Fatalf("unexpected name: %s", name)
	}
}

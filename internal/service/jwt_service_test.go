package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTService_IssueAndParse(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)

	token, err := svc.IssueToken(" ops ", RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.Subject != "ops" || claims.Role != RoleAdmin || claims.ID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RejectsEmptySecretAndSubject(t *testing.T) {
	if _, err := NewJWTService("", time.Minute).IssueToken("ops", RoleAdmin); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
	if _, err := NewJWTService("secret", time.Minute).IssueToken("  ", RoleAdmin); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty subject, got %v", err)
	}
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)
	now := time.Now().UTC()

	sign := func(claims Claims, secret string) string {
		t.Helper()
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		return signed
	}
	base := func() Claims {
		return Claims{
			Role:      RoleAdmin,
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "persona-quiz",
				Subject:   "ops",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
			},
		}
	}

	wrongIssuer := base()
	wrongIssuer.Issuer = "other-issuer"
	if _, err := svc.ParseAccessToken(sign(wrongIssuer, "secret")); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for wrong issuer, got %v", err)
	}

	refresh := base()
	refresh.TokenType = "refresh"
	if _, err := svc.ParseAccessToken(sign(refresh, "secret")); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for non-access token, got %v", err)
	}

	if _, err := svc.ParseAccessToken(sign(base(), "other-secret")); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for bad signature, got %v", err)
	}

	expired := base()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
	if _, err := svc.ParseAccessToken(sign(expired, "secret")); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("s3cret", "tourdash", "tourdash")

	tok, err := a.GenerateToken("user-1", "c1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := a.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "user-1" || claims.CompanyID != "c1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestValidateRejects(t *testing.T) {
	a := NewJWTAuthenticator("s3cret", "tourdash", "tourdash")

	expired, _ := a.GenerateToken("user-1", "", -time.Minute)
	if _, err := a.ValidateToken(expired); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}

	other := NewJWTAuthenticator("other", "tourdash", "tourdash")
	forged, _ := other.GenerateToken("user-1", "", time.Hour)
	if _, err := a.ValidateToken(forged); err == nil {
		t.Fatalf("expected signature error")
	}

	foreign := NewJWTAuthenticator("s3cret", "billing", "tourdash")
	tok, _ := foreign.GenerateToken("user-1", "", time.Hour)
	if _, err := a.ValidateToken(tok); err == nil {
		t.Fatalf("expected audience error")
	}

	anon, _ := a.GenerateToken("", "", time.Hour)
	if _, err := a.ValidateToken(anon); !errors.Is(err, ErrMissingSubject) {
		t.Fatalf("expected missing subject, got %v", err)
	}
}

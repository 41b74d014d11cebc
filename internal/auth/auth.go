package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by dashboard access tokens. A non-empty CompanyID pins
// every request to that company's tickets.
type Claims struct {
	CompanyID string `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

type Authenticator interface {
	GenerateToken(subject, companyID string, ttl time.Duration) (string, error)
	ValidateToken(token string) (*Claims, error)
}

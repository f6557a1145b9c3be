// Package session issues and verifies the API's own signed session tokens
// and tracks revoked ones.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/domain"
)

const issuerName = "expense-tracker"

var ErrInvalidToken = errors.New("invalid session token")

// Claims are the JWT claims of a session token. The subject is the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for p valid for the issuer's TTL.
func (i *Issuer) Issue(p domain.Principal) (*domain.Session, error) {
	now := i.now()
	expires := now.Add(i.ttl)

	claims := Claims{
		Email: p.Email,
		Name:  p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.UID,
			Issuer:    issuerName,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &domain.Session{Token: signed, ExpiresAt: expires.UTC()}, nil
}

// Parse verifies token and returns its principal. Any failure, including
// expiry, yields ErrInvalidToken.
func (i *Issuer) Parse(token string) (*domain.Principal, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	var claims Claims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.Issuer != issuerName || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &domain.Principal{
		UID:       claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Source:    domain.SourceSession,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

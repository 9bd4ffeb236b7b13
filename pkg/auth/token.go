package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSigningSecret = errors.New("token signing secret is not configured")

type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Kind     Kind   `json:"kind"`
}

// Issuer signs HS256 tokens for the login endpoints.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(owner Principal) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrNoSigningSecret
	}
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   owner.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Username: owner.Name,
		Kind:     owner.Kind,
	})
	return token.SignedString(i.secret)
}

package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeOnly reads the identity claim WITHOUT verifying the signature.
// Anyone can mint a token for any identity; use HMACVerifier or the JWKS
// Provider wherever tokens cross a trust boundary.
type DecodeOnly struct{}

func (DecodeOnly) Identity(token string) (Principal, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Principal{}, err
	}
	return identityFromClaims(claims)
}

// HMACVerifier accepts only HS256/384/512 tokens signed with Secret.
type HMACVerifier struct {
	Secret []byte
}

func (v HMACVerifier) Identity(token string) (Principal, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		if len(v.Secret) == 0 {
			return nil, fmt.Errorf("HMAC token received but JWT_SECRET is not configured")
		}
		return v.Secret, nil
	})
	if err != nil {
		return Principal{}, err
	}
	if !parsed.Valid {
		return Principal{}, fmt.Errorf("token is invalid")
	}
	return identityFromClaims(claims)
}

func identityFromClaims(claims jwt.MapClaims) (Principal, error) {
	identity, _ := claims[IdentityClaim].(string)
	if identity == "" {
		return Principal{}, ErrMissingIdentity
	}
	kind, _ := claims[KindClaim].(string)
	switch Kind(kind) {
	case KindUser, KindCompany:
		return Principal{Kind: Kind(kind), Name: identity}, nil
	default:
		return Principal{}, ErrUnknownKind
	}
}

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-jobboard-backend/pkg/apperror"
)

// Token payload fields. Users carry their username in IdentityClaim,
// companies their handle; KindClaim says which namespace it belongs to.
const (
	IdentityClaim = "username"
	KindClaim     = "kind"
)

var (
	ErrMissingIdentity = errors.New("token payload has no identity claim")
	ErrUnknownKind     = errors.New("token payload has no valid principal kind")
)

type Kind string

const (
	KindUser    Kind = "user"
	KindCompany Kind = "company"
)

// Principal is the owner a token speaks for. Usernames and company handles
// may coincide, so both fields must match.
type Principal struct {
	Kind Kind
	Name string
}

func User(username string) Principal { return Principal{Kind: KindUser, Name: username} }

func Company(handle string) Principal { return Principal{Kind: KindCompany, Name: handle} }

func (p Principal) String() string { return fmt.Sprintf("%s:%s", p.Kind, p.Name) }

// IdentityExtractor returns the principal claimed by a raw token.
type IdentityExtractor interface {
	Identity(token string) (Principal, error)
}

type Authorizer struct {
	extractor IdentityExtractor
}

func NewAuthorizer(extractor IdentityExtractor) *Authorizer {
	return &Authorizer{extractor: extractor}
}

// Identify validates the header shape and extracts the claimed principal.
func (a *Authorizer) Identify(authHeader string) (Principal, error) {
	if authHeader == "" {
		return Principal{}, apperror.Unauthorized("Authorization header with valid token required.")
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	token = strings.TrimSpace(token)
	if !ok || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return Principal{}, apperror.Unauthorized("Authorization header must have format: `Bearer token`.")
	}

	principal, err := a.extractor.Identity(token)
	if err != nil {
		return Principal{}, apperror.New(http.StatusUnauthorized, "Unauthorized", "Invalid token: "+err.Error(), err)
	}
	return principal, nil
}

// Authorize succeeds only when the token's principal equals owner.
func (a *Authorizer) Authorize(authHeader string, owner Principal) error {
	principal, err := a.Identify(authHeader)
	if err != nil {
		return err
	}
	if principal != owner {
		return apperror.Forbidden("You are not authorized to make changes to this resource because permissions belong to another user.")
	}
	return nil
}

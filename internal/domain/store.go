package domain

import (
	"context"
	"io"

	"go-jobboard-backend/pkg/auth"
)

// Pagination is a normalized skip/limit pair. Both are non-negative.
type Pagination struct {
	Skip  int
	Limit int
}

// Store groups the entity repositories over one connection or transaction.
type Store interface {
	Users() UserRepository
	Companies() CompanyRepository
	Jobs() JobRepository
	// WithinTx runs fn against a transactional Store. fn's error rolls the
	// transaction back; a nil return commits it. Nested calls reuse the
	// outer transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// Authorizer checks that the bearer token in authHeader belongs to owner.
type Authorizer interface {
	Authorize(authHeader string, owner auth.Principal) error
	// Identify returns the principal claimed by the bearer token.
	Identify(authHeader string) (auth.Principal, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(owner auth.Principal) (string, error)
}

// FileStorage persists uploaded files and returns a public URL.
type FileStorage interface {
	Put(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type AuthUsecase interface {
	LoginUser(ctx context.Context, username, password string) (string, error)
	LoginCompany(ctx context.Context, handle, password string) (string, error)
}

// LoginGuard locks out identities after repeated failed logins.
type LoginGuard interface {
	IsBlocked(ctx context.Context, identity string) (bool, error)
	// RecordFailure reports whether this failure triggered a block.
	RecordFailure(ctx context.Context, identity string) (bool, error)
	Clear(ctx context.Context, identity string) error
}

// ImageResizer normalizes an uploaded image and reports its content type.
type ImageResizer interface {
	Resize(data []byte) ([]byte, string, error)
}

package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/logger"
)

type authUsecase struct {
	store  domain.Store
	hasher domain.PasswordHasher
	issuer domain.TokenIssuer
	guard  domain.LoginGuard
}

// NewAuthUsecase wires the login endpoints. guard may be nil to disable
// lockouts.
func NewAuthUsecase(store domain.Store, hasher domain.PasswordHasher, issuer domain.TokenIssuer, guard domain.LoginGuard) domain.AuthUsecase {
	return &authUsecase{
		store:  store,
		hasher: hasher,
		issuer: issuer,
		guard:  guard,
	}
}

func invalidCredentials() *apperror.AppError {
	return apperror.Unauthorized("Invalid credentials.")
}

func loginBlocked() *apperror.AppError {
	return apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
}

func (u *authUsecase) LoginUser(ctx context.Context, username, password string) (string, error) {
	return u.login(ctx, auth.User(username), func() (string, error) {
		user, err := u.store.Users().GetByUsername(ctx, username)
		if err != nil {
			return "", err
		}
		return user.Password, nil
	}, password)
}

func (u *authUsecase) LoginCompany(ctx context.Context, handle, password string) (string, error) {
	return u.login(ctx, auth.Company(handle), func() (string, error) {
		company, err := u.store.Companies().GetByHandle(ctx, handle)
		if err != nil {
			return "", err
		}
		return company.Password, nil
	}, password)
}

// login checks the lockout, loads the stored hash via lookup and issues a
// token for principal. Guard failures are logged and ignored.
func (u *authUsecase) login(ctx context.Context, principal auth.Principal, lookup func() (string, error), password string) (string, error) {
	key := principal.String()
	if u.guard != nil {
		blocked, err := u.guard.IsBlocked(ctx, key)
		if err != nil {
			logger.Log.Warn("login guard unavailable", "error", err)
		}
		if blocked {
			return "", loginBlocked()
		}
	}

	hash, err := lookup()
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", storeError(err)
	}
	if err != nil || u.hasher.Compare(hash, password) != nil {
		return "", u.fail(ctx, key)
	}

	if u.guard != nil {
		if err := u.guard.Clear(ctx, key); err != nil {
			logger.Log.Warn("login guard unavailable", "error", err)
		}
	}

	token, err := u.issuer.Issue(principal)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

func (u *authUsecase) fail(ctx context.Context, key string) error {
	if u.guard == nil {
		return invalidCredentials()
	}
	blocked, err := u.guard.RecordFailure(ctx, key)
	if err != nil {
		logger.Log.Warn("login guard unavailable", "error", err)
	}
	if blocked {
		return loginBlocked()
	}
	return invalidCredentials()
}

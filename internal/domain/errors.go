package domain

import "errors"

// Repository sentinels. Usecases translate these into apperror values;
// nothing below the usecase layer knows about HTTP.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateHandle   = errors.New("company handle already exists")
	ErrReferenced        = errors.New("resource is still referenced")
)

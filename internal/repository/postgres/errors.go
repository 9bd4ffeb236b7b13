package postgres

import (
	"errors"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// mapError turns driver errors into domain sentinels. Anything unknown is
// returned unchanged and surfaces as an internal error.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case "users_username_key":
			return domain.ErrDuplicateUsername
		case "users_email_key":
			return domain.ErrDuplicateEmail
		case "companies_handle_key":
			return domain.ErrDuplicateHandle
		}
	case pgForeignKeyViolation:
		return domain.ErrReferenced
	case pgInvalidTextRepr:
		// a malformed uuid can never match a row
		return domain.ErrNotFound
	}
	return err
}

func expectOne(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

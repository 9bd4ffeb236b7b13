package postgres

import (
	"errors"
	"fmt"
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	opaque := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"duplicate username", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_username_key"}, domain.ErrDuplicateUsername},
		{"duplicate email", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"}, domain.ErrDuplicateEmail},
		{"duplicate handle", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "companies_handle_key"}, domain.ErrDuplicateHandle},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, domain.ErrReferenced},
		{"malformed uuid", &pgconn.PgError{Code: pgInvalidTextRepr}, domain.ErrNotFound},
		{"unknown", opaque, opaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapError(tt.err))
		})
	}
}

func TestMapErrorKeepsUnknownConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "something_else"}
	assert.Same(t, pgErr, mapError(pgErr))
}

func TestExpectOne(t *testing.T) {
	assert.ErrorIs(t, expectOne(pgconn.NewCommandTag("UPDATE 0"), nil), domain.ErrNotFound)
	assert.NoError(t, expectOne(pgconn.NewCommandTag("UPDATE 1"), nil))
	assert.ErrorIs(t, expectOne(pgconn.CommandTag{}, pgx.ErrNoRows), domain.ErrNotFound)
}

package usecase

import (
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"
)

// storeError converts repository failures into API errors. AppErrors raised
// inside a transaction pass through untouched.
func storeError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		return apperror.Conflict("User Already Exists", "The username is taken.")
	case errors.Is(err, domain.ErrDuplicateEmail):
		return apperror.Conflict("Email Address Already Registered.", "The email address has already been registered to a different user.")
	case errors.Is(err, domain.ErrDuplicateHandle):
		return apperror.Conflict("Company Already Exists", "The company handle is taken.")
	case errors.Is(err, domain.ErrReferenced):
		return apperror.Conflict("Conflict", "The resource is still referenced by other records.")
	}
	return apperror.Internal(err)
}

func userNotFound(username string) *apperror.AppError {
	return apperror.NotFound("User Not Found", fmt.Sprintf("No user '%s' found.", username))
}

func companyNotFound(ref string) *apperror.AppError {
	return apperror.NotFound("Company Not Found", fmt.Sprintf("No company '%s' found.", ref))
}

func jobNotFound(id string) *apperror.AppError {
	return apperror.NotFound("Job Not Found", fmt.Sprintf("No Job with ID %s found.", id))
}

func unknownCompany(field, id string) *apperror.AppError {
	return apperror.Validation(
		fmt.Sprintf("You passed a Company ID '%s' that does not exist. Please query for a proper company ID.", id),
		[]validation.FieldError{{Field: field, Message: "references a company that does not exist"}},
	)
}

// now is truncated to what PostgreSQL timestamps can hold so both stores
// return identical values.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

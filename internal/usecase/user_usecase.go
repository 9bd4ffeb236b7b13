package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/validation"

	"github.com/google/uuid"
)

type userUsecase struct {
	store   domain.Store
	authz   domain.Authorizer
	hasher  domain.PasswordHasher
	resizer domain.ImageResizer
	files   domain.FileStorage
}

func NewUserUsecase(store domain.Store, authz domain.Authorizer, hasher domain.PasswordHasher, resizer domain.ImageResizer, files domain.FileStorage) domain.UserUsecase {
	return &userUsecase{
		store:   store,
		authz:   authz,
		hasher:  hasher,
		resizer: resizer,
		files:   files,
	}
}

func (u *userUsecase) CreateUser(ctx context.Context, draft *domain.User) (*domain.User, error) {
	user := draft.Clone()

	err := u.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		if _, err := tx.Users().GetByUsername(ctx, user.Username); err == nil {
			return apperror.Conflict("User Already Exists", fmt.Sprintf("The username '%s' is taken.", user.Username))
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if _, err := tx.Users().GetByEmail(ctx, user.Email); err == nil {
			return apperror.Conflict("Email Address Already Registered.",
				fmt.Sprintf("The email address '%s' has already been registered to a different user.", user.Email))
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		company, err := resolveCurrentCompany(ctx, tx, user.CurrentCompanyID)
		if err != nil {
			return err
		}
		setCurrentCompany(user, company)

		if err := resolveExperience(ctx, tx, user.Experience); err != nil {
			return err
		}

		hash, err := u.hasher.Hash(user.Password)
		if err != nil {
			return err
		}
		user.Password = hash

		user.ID = uuid.NewString()
		user.CreatedAt = now()
		user.UpdatedAt = user.CreatedAt
		normalizeUser(user)

		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		if company != nil {
			return tx.Companies().AddEmployee(ctx, company.ID, user.ID)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	user.Password = ""
	return user, nil
}

func (u *userUsecase) GetUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := u.store.Users().GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, userNotFound(username)
	}
	if err != nil {
		return nil, storeError(err)
	}
	return user, nil
}

func (u *userUsecase) ListUsers(ctx context.Context, page domain.Pagination) ([]domain.User, int64, error) {
	users, total, err := u.store.Users().Fetch(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, storeError(err)
	}
	return users, total, nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, authHeader, username string, patch *domain.UserPatch) (*domain.User, error) {
	if err := u.authz.Authorize(authHeader, auth.User(username)); err != nil {
		return nil, err
	}

	var updated *domain.User
	err := u.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		user, err := tx.Users().GetByUsername(ctx, username)
		if errors.Is(err, domain.ErrNotFound) {
			return userNotFound(username)
		}
		if err != nil {
			return err
		}

		if patch.Email != nil && *patch.Email != user.Email {
			if _, err := tx.Users().GetByEmail(ctx, *patch.Email); err == nil {
				return apperror.Conflict("Email Address Already Registered.",
					fmt.Sprintf("The email address '%s' has already been registered to a different user.", *patch.Email))
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			user.Email = *patch.Email
		}

		if patch.Password != nil {
			hash, err := u.hasher.Hash(*patch.Password)
			if err != nil {
				return err
			}
			user.Password = hash
		}

		if patch.CurrentCompanyID != nil {
			if err := moveEmployee(ctx, tx, user, *patch.CurrentCompanyID); err != nil {
				return err
			}
		}

		if patch.Experience != nil {
			experience := append([]domain.Experience(nil), (*patch.Experience)...)
			if err := resolveExperience(ctx, tx, experience); err != nil {
				return err
			}
			user.Experience = experience
		}

		if patch.FirstName != nil {
			user.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			user.LastName = *patch.LastName
		}
		if patch.Photo != nil {
			user.Photo = patch.Photo
		}
		if patch.Skills != nil {
			user.Skills = append([]string(nil), (*patch.Skills)...)
		}
		if patch.Education != nil {
			user.Education = patch.Education
		}

		user.UpdatedAt = now()
		normalizeUser(user)
		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	updated.Password = ""
	return updated, nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, authHeader, username string) error {
	if err := u.authz.Authorize(authHeader, auth.User(username)); err != nil {
		return err
	}

	err := u.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		user, err := tx.Users().GetByUsername(ctx, username)
		if errors.Is(err, domain.ErrNotFound) {
			return userNotFound(username)
		}
		if err != nil {
			return err
		}

		if user.CurrentCompanyID != nil {
			if err := removeEmployee(ctx, tx, *user.CurrentCompanyID, user.ID); err != nil {
				return err
			}
		}
		return tx.Users().Delete(ctx, username)
	})
	return storeError(err)
}

func (u *userUsecase) UpdatePhoto(ctx context.Context, authHeader, username string, image []byte) (*domain.User, error) {
	if err := u.authz.Authorize(authHeader, auth.User(username)); err != nil {
		return nil, err
	}

	user, err := u.store.Users().GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, userNotFound(username)
	}
	if err != nil {
		return nil, storeError(err)
	}

	data, contentType, err := u.resizer.Resize(image)
	if err != nil {
		return nil, apperror.Validation("Photo must be a JPEG, PNG or GIF image.",
			[]validation.FieldError{{Field: "photo", Message: "is not a supported image"}})
	}

	key := fmt.Sprintf("users/%s/%s.jpg", user.ID, uuid.NewString())
	url, err := u.files.Put(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("store photo: %w", err))
	}

	updated, err := u.UpdateUser(ctx, authHeader, username, &domain.UserPatch{Photo: &url})
	if err != nil {
		if delErr := u.files.Delete(ctx, key); delErr != nil {
			logger.Log.Warn("failed to remove orphaned photo", "key", key, "error", delErr)
		}
		return nil, err
	}
	return updated, nil
}

func (u *userUsecase) ApplyToJob(ctx context.Context, authHeader, jobID string) (*domain.User, error) {
	principal, err := u.authz.Identify(authHeader)
	if err != nil {
		return nil, err
	}
	if principal.Kind != auth.KindUser {
		return nil, apperror.Forbidden("Only registered users can apply to jobs.")
	}
	username := principal.Name

	var applicant *domain.User
	err = u.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		user, err := tx.Users().GetByUsername(ctx, username)
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.Forbidden("Only registered users can apply to jobs.")
		}
		if err != nil {
			return err
		}

		if _, err := tx.Jobs().GetByID(ctx, jobID); errors.Is(err, domain.ErrNotFound) {
			return jobNotFound(jobID)
		} else if err != nil {
			return err
		}

		if !user.HasApplied(jobID) {
			user.Applied = append(user.Applied, jobID)
			user.UpdatedAt = now()
			if err := tx.Users().Update(ctx, user); err != nil {
				return err
			}
		}
		applicant = user
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	applicant.Password = ""
	return applicant, nil
}

// resolveCurrentCompany loads the company a user points at. A nil or empty
// id means no current company.
func resolveCurrentCompany(ctx context.Context, tx domain.Store, id *string) (*domain.Company, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	company, err := tx.Companies().GetByID(ctx, *id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, unknownCompany("data.currentCompanyId", *id)
	}
	return company, err
}

func setCurrentCompany(user *domain.User, company *domain.Company) {
	if company == nil {
		user.CurrentCompanyID = nil
		user.CurrentCompanyName = nil
		return
	}
	id, name := company.ID, company.Name
	user.CurrentCompanyID = &id
	user.CurrentCompanyName = &name
}

// resolveExperience checks every referenced company and caches its name.
// All dangling references are reported together, by index.
func resolveExperience(ctx context.Context, tx domain.Store, experience []domain.Experience) error {
	var missing []validation.FieldError
	for i := range experience {
		id := experience[i].CompanyID
		if id == nil || *id == "" {
			experience[i].CompanyID = nil
			continue
		}

		company, err := tx.Companies().GetByID(ctx, *id)
		if errors.Is(err, domain.ErrNotFound) {
			missing = append(missing, validation.FieldError{
				Field:   fmt.Sprintf("data.experience[%d].companyId", i),
				Message: fmt.Sprintf("company '%s' at index %d does not exist", *id, i),
			})
			continue
		}
		if err != nil {
			return err
		}
		experience[i].CompanyName = company.Name
	}

	if len(missing) > 0 {
		return apperror.Validation("You passed Company IDs in the experience array that do not exist. Please query for proper company IDs.", missing)
	}
	return nil
}

// moveEmployee points user at companyID and keeps both employee lists in
// step. An empty companyID detaches the user.
func moveEmployee(ctx context.Context, tx domain.Store, user *domain.User, companyID string) error {
	company, err := resolveCurrentCompany(ctx, tx, &companyID)
	if err != nil {
		return err
	}

	previous := user.CurrentCompanyID
	setCurrentCompany(user, company)

	if previous != nil && (company == nil || *previous != company.ID) {
		if err := removeEmployee(ctx, tx, *previous, user.ID); err != nil {
			return err
		}
	}
	if company != nil {
		return tx.Companies().AddEmployee(ctx, company.ID, user.ID)
	}
	return nil
}

// removeEmployee tolerates a company that no longer exists.
func removeEmployee(ctx context.Context, tx domain.Store, companyID, userID string) error {
	err := tx.Companies().RemoveEmployee(ctx, companyID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func normalizeUser(user *domain.User) {
	if user.Skills == nil {
		user.Skills = []string{}
	}
	if user.Experience == nil {
		user.Experience = []domain.Experience{}
	}
	if user.Applied == nil {
		user.Applied = []string{}
	}
}

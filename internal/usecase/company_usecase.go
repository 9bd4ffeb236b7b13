package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/google/uuid"
)

type companyUsecase struct {
	store   domain.Store
	authz   domain.Authorizer
	hasher  domain.PasswordHasher
	cascade bool
}

// NewCompanyUsecase builds the company write path. With cascade set,
// deleting a company also deletes its jobs and detaches its employees;
// otherwise deletion is refused while either still references it.
func NewCompanyUsecase(store domain.Store, authz domain.Authorizer, hasher domain.PasswordHasher, cascade bool) domain.CompanyUsecase {
	return &companyUsecase{
		store:   store,
		authz:   authz,
		hasher:  hasher,
		cascade: cascade,
	}
}

func (u *companyUsecase) CreateCompany(ctx context.Context, draft *domain.Company) (*domain.Company, error) {
	company := draft.Clone()

	if _, err := u.store.Companies().GetByHandle(ctx, company.Handle); err == nil {
		return nil, apperror.Conflict("Company Already Exists", fmt.Sprintf("The handle '%s' is taken.", company.Handle))
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, storeError(err)
	}

	hash, err := u.hasher.Hash(company.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	company.Password = hash
	company.ID = uuid.NewString()
	company.Employees = []string{}
	company.CreatedAt = now()
	company.UpdatedAt = company.CreatedAt

	if err := u.store.Companies().Create(ctx, company); err != nil {
		return nil, storeError(err)
	}

	company.Password = ""
	return company, nil
}

func (u *companyUsecase) GetCompany(ctx context.Context, handle string) (*domain.Company, error) {
	company, err := u.store.Companies().GetByHandle(ctx, handle)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, companyNotFound(handle)
	}
	if err != nil {
		return nil, storeError(err)
	}
	return company, nil
}

func (u *companyUsecase) ListCompanies(ctx context.Context, page domain.Pagination) ([]domain.Company, int64, error) {
	companies, total, err := u.store.Companies().Fetch(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, storeError(err)
	}
	return companies, total, nil
}

func (u *companyUsecase) UpdateCompany(ctx context.Context, authHeader, handle string, patch *domain.CompanyPatch) (*domain.Company, error) {
	if err := u.authz.Authorize(authHeader, auth.Company(handle)); err != nil {
		return nil, err
	}

	var updated *domain.Company
	err := u.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		company, err := tx.Companies().GetByHandle(ctx, handle)
		if errors.Is(err, domain.ErrNotFound) {
			return companyNotFound(handle)
		}
		if err != nil {
			return err
		}

		renamed := patch.Name != nil && *patch.Name != company.Name
		if patch.Name != nil {
			company.Name = *patch.Name
		}
		if patch.Password != nil {
			hash, err := u.hasher.Hash(*patch.Password)
			if err != nil {
				return err
			}
			company.Password = hash
		}
		if patch.Email != nil {
			company.Email = patch.Email
		}
		if patch.Logo != nil {
			company.Logo = patch.Logo
		}
		if patch.Description != nil {
			company.Description = patch.Description
		}
		company.UpdatedAt = now()

		if err := tx.Companies().Update(ctx, company); err != nil {
			return err
		}
		if renamed {
			if err := tx.Users().RenameCompany(ctx, company.ID, company.Name); err != nil {
				return err
			}
		}
		updated = company
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	updated.Password = ""
	return updated, nil
}

func (u *companyUsecase) DeleteCompany(ctx context.Context, authHeader, handle string) error {
	if err := u.authz.Authorize(authHeader, auth.Company(handle)); err != nil {
		return err
	}

	err := u.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		company, err := tx.Companies().GetByHandle(ctx, handle)
		if errors.Is(err, domain.ErrNotFound) {
			return companyNotFound(handle)
		}
		if err != nil {
			return err
		}

		if u.cascade {
			if _, err := tx.Jobs().DeleteByCompanyID(ctx, company.ID); err != nil {
				return err
			}
			if err := tx.Users().DetachCompany(ctx, company.ID); err != nil {
				return err
			}
		} else {
			jobs, err := tx.Jobs().CountByCompanyID(ctx, company.ID)
			if err != nil {
				return err
			}
			if jobs > 0 || len(company.Employees) > 0 {
				return apperror.Conflict("Company In Use",
					fmt.Sprintf("The company '%s' still has %d job(s) and %d employee(s).", handle, jobs, len(company.Employees)))
			}
		}

		return tx.Companies().Delete(ctx, company.ID)
	})
	return storeError(err)
}

package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/google/uuid"
)

type jobUsecase struct {
	store domain.Store
	authz domain.Authorizer
}

func NewJobUsecase(store domain.Store, authz domain.Authorizer) domain.JobUsecase {
	return &jobUsecase{
		store: store,
		authz: authz,
	}
}

// ownerOf returns the company principal that may mutate jobs of companyID.
func (u *jobUsecase) ownerOf(ctx context.Context, tx domain.Store, companyID string) (auth.Principal, error) {
	company, err := tx.Companies().GetByID(ctx, companyID)
	if err != nil {
		return auth.Principal{}, err
	}
	return auth.Company(company.Handle), nil
}

// CreateJob reports a missing company before looking at the token.
func (u *jobUsecase) CreateJob(ctx context.Context, authHeader string, draft *domain.Job) (*domain.Job, error) {
	job := *draft

	owner, err := u.ownerOf(ctx, u.store, job.CompanyID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, companyNotFound(job.CompanyID)
	}
	if err != nil {
		return nil, storeError(err)
	}

	if err := u.authz.Authorize(authHeader, owner); err != nil {
		return nil, err
	}

	job.ID = uuid.NewString()
	job.CreatedAt = now()
	job.UpdatedAt = job.CreatedAt

	if err := u.store.Jobs().Create(ctx, &job); err != nil {
		return nil, storeError(err)
	}
	return &job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.store.Jobs().GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, jobNotFound(id)
	}
	if err != nil {
		return nil, storeError(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, page domain.Pagination) ([]domain.Job, int64, error) {
	jobs, total, err := u.store.Jobs().Fetch(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, storeError(err)
	}
	return jobs, total, nil
}

// UpdateJob merges patch onto the stored job. Moving a job to another
// company requires the caller to own both companies.
func (u *jobUsecase) UpdateJob(ctx context.Context, authHeader, id string, patch *domain.JobPatch) (*domain.Job, error) {
	var updated *domain.Job
	err := u.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		job, err := u.loadOwned(ctx, tx, authHeader, id)
		if err != nil {
			return err
		}

		if patch.CompanyID != nil && *patch.CompanyID != job.CompanyID {
			owner, err := u.ownerOf(ctx, tx, *patch.CompanyID)
			if errors.Is(err, domain.ErrNotFound) {
				return unknownCompany("data.companyId", *patch.CompanyID)
			}
			if err != nil {
				return err
			}
			if err := u.authz.Authorize(authHeader, owner); err != nil {
				return err
			}
		}

		patch.Apply(job)
		job.UpdatedAt = now()
		if err := tx.Jobs().Update(ctx, job); err != nil {
			return err
		}
		updated = job
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return updated, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, authHeader, id string) (*domain.Job, error) {
	var deleted *domain.Job
	err := u.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		job, err := u.loadOwned(ctx, tx, authHeader, id)
		if err != nil {
			return err
		}
		if err := tx.Jobs().Delete(ctx, id); err != nil {
			return err
		}
		deleted = job
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return deleted, nil
}

// loadOwned fetches job id and checks the token belongs to its company.
func (u *jobUsecase) loadOwned(ctx context.Context, tx domain.Store, authHeader, id string) (*domain.Job, error) {
	job, err := tx.Jobs().GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, jobNotFound(id)
	}
	if err != nil {
		return nil, err
	}

	owner, err := u.ownerOf(ctx, tx, job.CompanyID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(errors.New("job references a missing company"))
	}
	if err != nil {
		return nil, err
	}

	if err := u.authz.Authorize(authHeader, owner); err != nil {
		return nil, err
	}
	return job, nil
}

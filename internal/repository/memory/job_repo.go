package memory

import (
	"context"

	"go-jobboard-backend/internal/domain"
)

type jobRepo struct {
	s *Store
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	defer r.s.write()()

	if _, ok := r.s.db.data.companies[job.CompanyID]; !ok {
		return domain.ErrReferenced
	}

	stored := *job
	r.s.db.data.jobs[job.ID] = &stored
	r.s.db.data.jobOrder = append(r.s.db.data.jobOrder, job.ID)
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	defer r.s.read()()

	j, ok := r.s.db.data.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	job := *j
	return &job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	defer r.s.read()()

	jobs := []domain.Job{}
	for _, id := range page(r.s.db.data.jobOrder, limit, offset) {
		jobs = append(jobs, *r.s.db.data.jobs[id])
	}
	return jobs, int64(len(r.s.db.data.jobOrder)), nil
}

func (r *jobRepo) CountByCompanyID(ctx context.Context, companyID string) (int64, error) {
	defer r.s.read()()

	var n int64
	for _, j := range r.s.db.data.jobs {
		if j.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	defer r.s.write()()

	existing, ok := r.s.db.data.jobs[job.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.db.data.companies[job.CompanyID]; !ok {
		return domain.ErrReferenced
	}

	updated := *job
	updated.CreatedAt = existing.CreatedAt
	r.s.db.data.jobs[job.ID] = &updated
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	defer r.s.write()()

	if _, ok := r.s.db.data.jobs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.db.data.jobs, id)
	r.s.db.data.jobOrder = remove(r.s.db.data.jobOrder, id)
	return nil
}

func (r *jobRepo) DeleteByCompanyID(ctx context.Context, companyID string) (int64, error) {
	defer r.s.write()()

	var n int64
	for id, j := range r.s.db.data.jobs {
		if j.CompanyID == companyID {
			delete(r.s.db.data.jobs, id)
			r.s.db.data.jobOrder = remove(r.s.db.data.jobOrder, id)
			n++
		}
	}
	return n, nil
}

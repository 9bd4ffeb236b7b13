package domain

import (
	"context"
	"time"
)

type Job struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Salary    float64   `json:"salary"`
	Equity    float64   `json:"equity"`
	CompanyID string    `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type JobPatch struct {
	Title     *string
	Salary    *float64
	Equity    *float64
	CompanyID *string
}

// Apply merges the patch into j.
func (p *JobPatch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Salary != nil {
		j.Salary = *p.Salary
	}
	if p.Equity != nil {
		j.Equity = *p.Equity
	}
	if p.CompanyID != nil {
		j.CompanyID = *p.CompanyID
	}
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	Fetch(ctx context.Context, limit, offset int) ([]Job, int64, error)
	CountByCompanyID(ctx context.Context, companyID string) (int64, error)
	// Update rewrites title, salary, equity and company together.
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id string) error
	DeleteByCompanyID(ctx context.Context, companyID string) (int64, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, authHeader string, draft *Job) (*Job, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, page Pagination) ([]Job, int64, error)
	UpdateJob(ctx context.Context, authHeader, id string, patch *JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, authHeader, id string) (*Job, error)
}

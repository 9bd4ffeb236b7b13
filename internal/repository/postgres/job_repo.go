package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, title, salary, equity, company_id, created_at, updated_at`

type jobRepo struct {
	db DBTX
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	if err := row.Scan(&job.ID, &job.Title, &job.Salary, &job.Equity, &job.CompanyID, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (id, title, salary, equity, company_id, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query, job.ID, job.Title, job.Salary, job.Equity, job.CompanyID, job.CreatedAt, job.UpdatedAt)
	return mapError(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) CountByCompanyID(ctx context.Context, companyID string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE company_id = $1`, companyID).Scan(&total)
	return total, mapError(err)
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET title = $2, salary = $3, equity = $4, company_id = $5, updated_at = $6 WHERE id = $1`
	return expectOne(r.db.Exec(ctx, query, job.ID, job.Title, job.Salary, job.Equity, job.CompanyID, job.UpdatedAt))
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id))
}

func (r *jobRepo) DeleteByCompanyID(ctx context.Context, companyID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE company_id = $1`, companyID)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

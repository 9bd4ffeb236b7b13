package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const companyColumns = `id, handle, name, password, email, logo, description, employees, created_at, updated_at`

type companyRepo struct {
	db DBTX
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var company domain.Company
	err := row.Scan(
		&company.ID, &company.Handle, &company.Name, &company.Password,
		&company.Email, &company.Logo, &company.Description, pq.Array(&company.Employees),
		&company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if company.Employees == nil {
		company.Employees = []string{}
	}
	return &company, nil
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	query := `INSERT INTO companies (id, handle, name, password, email, logo, description, employees, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		company.ID, company.Handle, company.Name, company.Password,
		company.Email, company.Logo, company.Description, textArray(company.Employees),
		company.CreatedAt, company.UpdatedAt,
	)
	return mapError(err)
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	company, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return company, nil
}

func (r *companyRepo) GetByHandle(ctx context.Context, handle string) (*domain.Company, error) {
	company, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle))
	if err != nil {
		return nil, mapError(err)
	}
	return company, nil
}

func (r *companyRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Company, int64, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, *company)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

// Update rewrites the profile columns. Employees are only changed through
// AddEmployee and RemoveEmployee.
func (r *companyRepo) Update(ctx context.Context, company *domain.Company) error {
	query := `UPDATE companies SET name = $2, password = $3, email = $4, logo = $5, description = $6, updated_at = $7
              WHERE id = $1`
	return expectOne(r.db.Exec(ctx, query,
		company.ID, company.Name, company.Password, company.Email, company.Logo, company.Description, company.UpdatedAt,
	))
}

// Delete detaches users before removing the row; the foreign key alone would
// leave current_company_name behind. Run it inside Store.WithinTx.
func (r *companyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx,
		`UPDATE users SET current_company_id = NULL, current_company_name = NULL WHERE current_company_id = $1`,
		id); err != nil {
		return mapError(err)
	}
	return expectOne(r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id))
}

func (r *companyRepo) AddEmployee(ctx context.Context, companyID, userID string) error {
	query := `UPDATE companies
              SET employees = CASE WHEN $2::text = ANY(employees) THEN employees ELSE array_append(employees, $2::text) END
              WHERE id = $1`
	return expectOne(r.db.Exec(ctx, query, companyID, userID))
}

func (r *companyRepo) RemoveEmployee(ctx context.Context, companyID, userID string) error {
	return expectOne(r.db.Exec(ctx,
		`UPDATE companies SET employees = array_remove(employees, $2::text) WHERE id = $1`,
		companyID, userID))
}

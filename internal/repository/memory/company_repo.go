package memory

import (
	"context"

	"go-jobboard-backend/internal/domain"
)

type companyRepo struct {
	s *Store
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	defer r.s.write()()

	for _, c := range r.s.db.data.companies {
		if c.Handle == company.Handle {
			return domain.ErrDuplicateHandle
		}
	}

	stored := company.Clone()
	if stored.Employees == nil {
		stored.Employees = []string{}
	}
	r.s.db.data.companies[company.ID] = stored
	r.s.db.data.compOrder = append(r.s.db.data.compOrder, company.ID)
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	defer r.s.read()()

	c, ok := r.s.db.data.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *companyRepo) GetByHandle(ctx context.Context, handle string) (*domain.Company, error) {
	defer r.s.read()()

	for _, c := range r.s.db.data.companies {
		if c.Handle == handle {
			return c.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *companyRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Company, int64, error) {
	defer r.s.read()()

	companies := []domain.Company{}
	for _, id := range page(r.s.db.data.compOrder, limit, offset) {
		companies = append(companies, *r.s.db.data.companies[id].Clone())
	}
	return companies, int64(len(r.s.db.data.compOrder)), nil
}

func (r *companyRepo) Update(ctx context.Context, company *domain.Company) error {
	defer r.s.write()()

	existing, ok := r.s.db.data.companies[company.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Name = company.Name
	existing.Password = company.Password
	existing.Email = company.Email
	existing.Logo = company.Logo
	existing.Description = company.Description
	existing.UpdatedAt = company.UpdatedAt
	r.s.db.data.companies[company.ID] = existing.Clone()
	return nil
}

// Delete refuses while jobs reference the company and clears user
// references, like the SQL foreign keys.
func (r *companyRepo) Delete(ctx context.Context, id string) error {
	defer r.s.write()()

	if _, ok := r.s.db.data.companies[id]; !ok {
		return domain.ErrNotFound
	}
	for _, j := range r.s.db.data.jobs {
		if j.CompanyID == id {
			return domain.ErrReferenced
		}
	}
	for _, u := range r.s.db.data.users {
		if u.CurrentCompanyID != nil && *u.CurrentCompanyID == id {
			u.CurrentCompanyID = nil
			u.CurrentCompanyName = nil
		}
	}

	delete(r.s.db.data.companies, id)
	r.s.db.data.compOrder = remove(r.s.db.data.compOrder, id)
	return nil
}

func (r *companyRepo) AddEmployee(ctx context.Context, companyID, userID string) error {
	defer r.s.write()()

	c, ok := r.s.db.data.companies[companyID]
	if !ok {
		return domain.ErrNotFound
	}
	if !contains(c.Employees, userID) {
		c.Employees = append(c.Employees, userID)
	}
	return nil
}

func (r *companyRepo) RemoveEmployee(ctx context.Context, companyID, userID string) error {
	defer r.s.write()()

	c, ok := r.s.db.data.companies[companyID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Employees = remove(c.Employees, userID)
	return nil
}

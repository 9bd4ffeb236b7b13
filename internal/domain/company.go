package domain

import (
	"context"
	"time"
)

// Company owns jobs. Handle is the identity a bearer token must carry to
// mutate the company or its jobs.
type Company struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Name        string    `json:"name"`
	Password    string    `json:"-"`
	Email       *string   `json:"email"`
	Logo        *string   `json:"logo"`
	Description *string   `json:"description"`
	Employees   []string  `json:"employees"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Company) Clone() *Company {
	cp := *c
	cp.Email = cloneString(c.Email)
	cp.Logo = cloneString(c.Logo)
	cp.Description = cloneString(c.Description)
	cp.Employees = append([]string(nil), c.Employees...)
	return &cp
}

type CompanyPatch struct {
	Name        *string
	Password    *string
	Email       *string
	Logo        *string
	Description *string
}

type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	GetByHandle(ctx context.Context, handle string) (*Company, error)
	Fetch(ctx context.Context, limit, offset int) ([]Company, int64, error)
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id string) error
	// AddEmployee is a no-op when userID is already listed.
	AddEmployee(ctx context.Context, companyID, userID string) error
	RemoveEmployee(ctx context.Context, companyID, userID string) error
}

type CompanyUsecase interface {
	CreateCompany(ctx context.Context, draft *Company) (*Company, error)
	GetCompany(ctx context.Context, handle string) (*Company, error)
	ListCompanies(ctx context.Context, page Pagination) ([]Company, int64, error)
	UpdateCompany(ctx context.Context, authHeader, handle string, patch *CompanyPatch) (*Company, error)
	DeleteCompany(ctx context.Context, authHeader, handle string) error
}

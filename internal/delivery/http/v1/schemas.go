package v1

import (
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/validation"
)

// Schema names
const (
	schemaUserNew       = "userNew"
	schemaUserUpdate    = "userUpdate"
	schemaUserAuth      = "userAuth"
	schemaCompanyNew    = "companyNew"
	schemaCompanyUpdate = "companyUpdate"
	schemaCompanyAuth   = "companyAuth"
	schemaJobNew        = "jobNew"
	schemaJobUpdate     = "jobUpdate"
)

// NewSchemaRegistry registers every request body the API accepts. Update
// schemas are strict: unknown fields are rejected.
func NewSchemaRegistry() (*validation.Registry, error) {
	return validation.NewRegistry(
		validation.NewSchema[CreateUserRequest](schemaUserNew, false),
		validation.NewSchema[UpdateUserRequest](schemaUserUpdate, true),
		validation.NewSchema[UserAuthRequest](schemaUserAuth, false),
		validation.NewSchema[CreateCompanyRequest](schemaCompanyNew, false),
		validation.NewSchema[UpdateCompanyRequest](schemaCompanyUpdate, true),
		validation.NewSchema[CompanyAuthRequest](schemaCompanyAuth, false),
		validation.NewSchema[CreateJobRequest](schemaJobNew, false),
		validation.NewSchema[UpdateJobRequest](schemaJobUpdate, true),
	)
}

type EducationInput struct {
	Institution string     `json:"institution" validate:"max=255"`
	Degree      string     `json:"degree" validate:"max=255"`
	EndDate     *time.Time `json:"endDate"`
}

type ExperienceInput struct {
	JobTitle    string     `json:"jobTitle" validate:"required,max=255"`
	CompanyName string     `json:"companyName" validate:"max=255"`
	CompanyID   *string    `json:"companyId"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// Users

type CreateUserRequest struct {
	Data *struct {
		Username         string            `json:"username" validate:"required,username"`
		Password         string            `json:"password" validate:"required,min=6,max=72"`
		FirstName        string            `json:"firstName" validate:"required,min=1,max=55,valid_name"`
		LastName         string            `json:"lastName" validate:"required,min=1,max=55,valid_name"`
		Email            string            `json:"email" validate:"required,email,max=255"`
		Photo            *string           `json:"photo" validate:"omitnil,url"`
		CurrentCompanyID *string           `json:"currentCompanyId"`
		Skills           []string          `json:"skills" validate:"omitempty,max=100,dive,min=1,max=100"`
		Education        *EducationInput   `json:"education"`
		Experience       []ExperienceInput `json:"experience" validate:"omitempty,max=100,dive"`
	} `json:"data" validate:"required"`
}

type UpdateUserRequest struct {
	Data *struct {
		Password         *string            `json:"password" validate:"omitnil,min=6,max=72"`
		FirstName        *string            `json:"firstName" validate:"omitnil,min=1,max=55,valid_name"`
		LastName         *string            `json:"lastName" validate:"omitnil,min=1,max=55,valid_name"`
		Email            *string            `json:"email" validate:"omitnil,email,max=255"`
		Photo            *string            `json:"photo" validate:"omitnil,url"`
		CurrentCompanyID *string            `json:"currentCompanyId"`
		Skills           *[]string          `json:"skills" validate:"omitnil,max=100,dive,min=1,max=100"`
		Education        *EducationInput    `json:"education"`
		Experience       *[]ExperienceInput `json:"experience" validate:"omitnil,max=100,dive"`
	} `json:"data" validate:"required"`
}

type UserAuthRequest struct {
	Data *struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	} `json:"data" validate:"required"`
}

// Companies

type CreateCompanyRequest struct {
	Data *struct {
		Handle      string  `json:"handle" validate:"required,handle"`
		Name        string  `json:"name" validate:"required,min=1,max=128,no_emoji"`
		Password    string  `json:"password" validate:"required,min=6,max=72"`
		Email       *string `json:"email" validate:"omitnil,email,max=255"`
		Logo        *string `json:"logo" validate:"omitnil,url"`
		Description *string `json:"description" validate:"omitnil,max=2000"`
	} `json:"data" validate:"required"`
}

type UpdateCompanyRequest struct {
	Data *struct {
		Name        *string `json:"name" validate:"omitnil,min=1,max=128,no_emoji"`
		Password    *string `json:"password" validate:"omitnil,min=6,max=72"`
		Email       *string `json:"email" validate:"omitnil,email,max=255"`
		Logo        *string `json:"logo" validate:"omitnil,url"`
		Description *string `json:"description" validate:"omitnil,max=2000"`
	} `json:"data" validate:"required"`
}

type CompanyAuthRequest struct {
	Data *struct {
		Handle   string `json:"handle" validate:"required"`
		Password string `json:"password" validate:"required"`
	} `json:"data" validate:"required"`
}

// Jobs

type CreateJobRequest struct {
	Data *struct {
		Title     string   `json:"title" validate:"required,min=1,max=255"`
		Salary    *float64 `json:"salary" validate:"required,gte=0"`
		Equity    *float64 `json:"equity" validate:"required,gte=0,lte=1"`
		CompanyID string   `json:"companyId" validate:"required"`
	} `json:"data" validate:"required"`
}

type UpdateJobRequest struct {
	Data *struct {
		Title     *string  `json:"title" validate:"omitnil,min=1,max=255"`
		Salary    *float64 `json:"salary" validate:"omitnil,gte=0"`
		Equity    *float64 `json:"equity" validate:"omitnil,gte=0,lte=1"`
		CompanyID *string  `json:"companyId" validate:"omitnil,min=1"`
	} `json:"data" validate:"required"`
}

// Conversions into domain values

func (e *EducationInput) toDomain() *domain.Education {
	if e == nil {
		return nil
	}
	return &domain.Education{Institution: e.Institution, Degree: e.Degree, EndDate: e.EndDate}
}

func experienceToDomain(in []ExperienceInput) []domain.Experience {
	out := make([]domain.Experience, len(in))
	for i, e := range in {
		out[i] = domain.Experience{
			JobTitle:    e.JobTitle,
			CompanyName: e.CompanyName,
			CompanyID:   e.CompanyID,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
		}
	}
	return out
}

func (r *CreateUserRequest) toDomain() *domain.User {
	d := r.Data
	return &domain.User{
		Username:         d.Username,
		Password:         d.Password,
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		Email:            d.Email,
		Photo:            d.Photo,
		CurrentCompanyID: d.CurrentCompanyID,
		Skills:           d.Skills,
		Education:        d.Education.toDomain(),
		Experience:       experienceToDomain(d.Experience),
	}
}

func (r *UpdateUserRequest) toDomain() *domain.UserPatch {
	d := r.Data
	patch := &domain.UserPatch{
		Email:            d.Email,
		Password:         d.Password,
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		Photo:            d.Photo,
		Skills:           d.Skills,
		Education:        d.Education.toDomain(),
		CurrentCompanyID: d.CurrentCompanyID,
	}
	if d.Experience != nil {
		experience := experienceToDomain(*d.Experience)
		patch.Experience = &experience
	}
	return patch
}

func (r *CreateCompanyRequest) toDomain() *domain.Company {
	d := r.Data
	return &domain.Company{
		Handle:      d.Handle,
		Name:        d.Name,
		Password:    d.Password,
		Email:       d.Email,
		Logo:        d.Logo,
		Description: d.Description,
	}
}

func (r *UpdateCompanyRequest) toDomain() *domain.CompanyPatch {
	d := r.Data
	return &domain.CompanyPatch{
		Name:        d.Name,
		Password:    d.Password,
		Email:       d.Email,
		Logo:        d.Logo,
		Description: d.Description,
	}
}

func (r *CreateJobRequest) toDomain() *domain.Job {
	d := r.Data
	return &domain.Job{
		Title:     d.Title,
		Salary:    *d.Salary,
		Equity:    *d.Equity,
		CompanyID: d.CompanyID,
	}
}

func (r *UpdateJobRequest) toDomain() *domain.JobPatch {
	d := r.Data
	return &domain.JobPatch{
		Title:     d.Title,
		Salary:    d.Salary,
		Equity:    d.Equity,
		CompanyID: d.CompanyID,
	}
}

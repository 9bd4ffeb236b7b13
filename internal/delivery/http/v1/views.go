package v1

import (
	"time"

	"go-jobboard-backend/internal/domain"
)

// Views are the public representations of stored records. Secrets never
// appear in them.

type UserView struct {
	ID                 string              `json:"id"`
	Username           string              `json:"username"`
	Email              string              `json:"email"`
	FirstName          string              `json:"firstName"`
	LastName           string              `json:"lastName"`
	Photo              *string             `json:"photo"`
	Skills             []string            `json:"skills"`
	Education          *domain.Education   `json:"education"`
	CurrentCompanyID   *string             `json:"currentCompanyId"`
	CurrentCompanyName *string             `json:"currentCompanyName"`
	Experience         []domain.Experience `json:"experience"`
	Applied            []string            `json:"applied"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

type CompanyView struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Name        string    `json:"name"`
	Email       *string   `json:"email"`
	Logo        *string   `json:"logo"`
	Description *string   `json:"description"`
	Employees   []string  `json:"employees"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type JobView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Salary    float64   `json:"salary"`
	Equity    float64   `json:"equity"`
	CompanyID string    `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UsernameView struct {
	Username string `json:"username"`
}

type HandleView struct {
	Handle string `json:"handle"`
}

type TokenView struct {
	Token string `json:"token"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func toUserView(u *domain.User) UserView {
	return UserView{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Photo:              u.Photo,
		Skills:             nonNil(u.Skills),
		Education:          u.Education,
		CurrentCompanyID:   u.CurrentCompanyID,
		CurrentCompanyName: u.CurrentCompanyName,
		Experience:         nonNil(u.Experience),
		Applied:            nonNil(u.Applied),
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func toUserViews(users []domain.User) []UserView {
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = toUserView(&users[i])
	}
	return views
}

func toCompanyView(c *domain.Company) CompanyView {
	return CompanyView{
		ID:          c.ID,
		Handle:      c.Handle,
		Name:        c.Name,
		Email:       c.Email,
		Logo:        c.Logo,
		Description: c.Description,
		Employees:   nonNil(c.Employees),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCompanyViews(companies []domain.Company) []CompanyView {
	views := make([]CompanyView, len(companies))
	for i := range companies {
		views[i] = toCompanyView(&companies[i])
	}
	return views
}

func toJobView(j *domain.Job) JobView {
	return JobView{
		ID:        j.ID,
		Title:     j.Title,
		Salary:    j.Salary,
		Equity:    j.Equity,
		CompanyID: j.CompanyID,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func toJobViews(jobs []domain.Job) []JobView {
	views := make([]JobView, len(jobs))
	for i := range jobs {
		views[i] = toJobView(&jobs[i])
	}
	return views
}

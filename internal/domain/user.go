package domain

import (
	"context"
	"time"
)

type Education struct {
	Institution string     `json:"institution,omitempty"`
	Degree      string     `json:"degree,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// Experience is a past position. CompanyName is a cached copy of the
// referenced company's name when CompanyID is set.
type Experience struct {
	JobTitle    string     `json:"jobTitle"`
	CompanyName string     `json:"companyName"`
	CompanyID   *string    `json:"companyId,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

type User struct {
	ID                 string       `json:"id"`
	Username           string       `json:"username"`
	Email              string       `json:"email"`
	Password           string       `json:"-"`
	FirstName          string       `json:"firstName"`
	LastName           string       `json:"lastName"`
	Photo              *string      `json:"photo"`
	Skills             []string     `json:"skills"`
	Education          *Education   `json:"education"`
	CurrentCompanyID   *string      `json:"currentCompanyId"`
	CurrentCompanyName *string      `json:"currentCompanyName"`
	Experience         []Experience `json:"experience"`
	Applied            []string     `json:"applied"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// Clone returns a deep copy so callers can mutate freely.
func (u *User) Clone() *User {
	c := *u
	c.Photo = cloneString(u.Photo)
	c.CurrentCompanyID = cloneString(u.CurrentCompanyID)
	c.CurrentCompanyName = cloneString(u.CurrentCompanyName)
	c.Skills = append([]string(nil), u.Skills...)
	c.Applied = append([]string(nil), u.Applied...)
	if u.Education != nil {
		edu := *u.Education
		edu.EndDate = cloneTime(u.Education.EndDate)
		c.Education = &edu
	}
	if u.Experience != nil {
		c.Experience = make([]Experience, len(u.Experience))
		for i, exp := range u.Experience {
			exp.CompanyID = cloneString(exp.CompanyID)
			exp.StartDate = cloneTime(exp.StartDate)
			exp.EndDate = cloneTime(exp.EndDate)
			c.Experience[i] = exp
		}
	}
	return &c
}

// HasApplied reports whether jobID is already in the applied list.
func (u *User) HasApplied(jobID string) bool {
	for _, id := range u.Applied {
		if id == jobID {
			return true
		}
	}
	return false
}

// UserPatch carries the optional fields of a user update. A nil field is
// left untouched. An empty CurrentCompanyID detaches the user from its
// current company.
type UserPatch struct {
	Email            *string
	Password         *string
	FirstName        *string
	LastName         *string
	Photo            *string
	Skills           *[]string
	Education        *Education
	CurrentCompanyID *string
	Experience       *[]Experience
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Fetch(ctx context.Context, limit, offset int) ([]User, int64, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, username string) error
	// RenameCompany refreshes every cached copy of a company's name.
	RenameCompany(ctx context.Context, companyID, name string) error
	// DetachCompany clears current-company references to companyID.
	DetachCompany(ctx context.Context, companyID string) error
}

type UserUsecase interface {
	CreateUser(ctx context.Context, draft *User) (*User, error)
	GetUser(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context, page Pagination) ([]User, int64, error)
	UpdateUser(ctx context.Context, authHeader, username string, patch *UserPatch) (*User, error)
	DeleteUser(ctx context.Context, authHeader, username string) error
	UpdatePhoto(ctx context.Context, authHeader, username string, image []byte) (*User, error)
	ApplyToJob(ctx context.Context, authHeader, jobID string) (*User, error)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

package memory

import (
	"context"
	"sort"

	"go-jobboard-backend/internal/domain"
)

type userRepo struct {
	s *Store
}

// checkUnique rejects a username or email already used by another user.
func (r *userRepo) checkUnique(user *domain.User) error {
	for id, existing := range r.s.db.data.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	return nil
}

// checkCompany mirrors the current_company_id foreign key.
func (r *userRepo) checkCompany(user *domain.User) error {
	if user.CurrentCompanyID == nil {
		return nil
	}
	if _, ok := r.s.db.data.companies[*user.CurrentCompanyID]; !ok {
		return domain.ErrReferenced
	}
	return nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	defer r.s.write()()

	if err := r.checkUnique(user); err != nil {
		return err
	}
	if err := r.checkCompany(user); err != nil {
		return err
	}

	r.s.db.data.users[user.ID] = user.Clone()
	r.s.db.data.userOrder = append(r.s.db.data.userOrder, user.ID)
	return nil
}

func (r *userRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	defer r.s.read()()

	for _, u := range r.s.db.data.users {
		if match(u) {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *userRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	defer r.s.read()()

	// listed by username like the SQL store
	order := append([]string(nil), r.s.db.data.userOrder...)
	sort.SliceStable(order, func(i, j int) bool {
		return r.s.db.data.users[order[i]].Username < r.s.db.data.users[order[j]].Username
	})

	users := []domain.User{}
	for _, id := range page(order, limit, offset) {
		users = append(users, *r.s.db.data.users[id].Clone())
	}
	return users, int64(len(r.s.db.data.userOrder)), nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	defer r.s.write()()

	existing, ok := r.s.db.data.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}
	if err := r.checkCompany(user); err != nil {
		return err
	}

	updated := user.Clone()
	updated.Username = existing.Username
	updated.CreatedAt = existing.CreatedAt
	r.s.db.data.users[user.ID] = updated
	return nil
}

func (r *userRepo) Delete(ctx context.Context, username string) error {
	defer r.s.write()()

	for id, u := range r.s.db.data.users {
		if u.Username == username {
			delete(r.s.db.data.users, id)
			r.s.db.data.userOrder = remove(r.s.db.data.userOrder, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *userRepo) RenameCompany(ctx context.Context, companyID, name string) error {
	defer r.s.write()()

	for _, u := range r.s.db.data.users {
		if u.CurrentCompanyID != nil && *u.CurrentCompanyID == companyID {
			n := name
			u.CurrentCompanyName = &n
		}
		for i := range u.Experience {
			if id := u.Experience[i].CompanyID; id != nil && *id == companyID {
				u.Experience[i].CompanyName = name
			}
		}
	}
	return nil
}

func (r *userRepo) DetachCompany(ctx context.Context, companyID string) error {
	defer r.s.write()()

	for _, u := range r.s.db.data.users {
		if u.CurrentCompanyID != nil && *u.CurrentCompanyID == companyID {
			u.CurrentCompanyID = nil
			u.CurrentCompanyName = nil
		}
	}
	return nil
}

package usecase_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/memory"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mocks

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(authHeader string, owner auth.Principal) error {
	return m.Called(authHeader, owner).Error(0)
}

func (m *MockAuthorizer) Identify(authHeader string) (auth.Principal, error) {
	args := m.Called(authHeader)
	return args.Get(0).(auth.Principal), args.Error(1)
}

// ownerAuthorizer accepts "Bearer <kind>:<name>" for that principal.
type ownerAuthorizer struct{}

func (ownerAuthorizer) Authorize(authHeader string, owner auth.Principal) error {
	if authHeader != "Bearer "+owner.String() {
		return apperror.Forbidden("forbidden")
	}
	return nil
}

func (ownerAuthorizer) Identify(authHeader string) (auth.Principal, error) {
	kind, name, ok := strings.Cut(strings.TrimPrefix(authHeader, "Bearer "), ":")
	if !ok || name == "" {
		return auth.Principal{}, apperror.Unauthorized("token required")
	}
	return auth.Principal{Kind: auth.Kind(kind), Name: name}, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeResizer struct{ err error }

func (r fakeResizer) Resize(data []byte) ([]byte, string, error) {
	return data, "image/jpeg", r.err
}

type fakeFiles struct {
	keys    []string
	deleted []string
}

func (f *fakeFiles) Put(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeFiles) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(owner auth.Principal) (string, error) { return "token-for-" + owner.String(), nil }

// failingStore fails every repository call.
type failingStore struct{ domain.Store }

func (failingStore) Users() domain.UserRepository { return failingUsers{} }

type failingUsers struct{ domain.UserRepository }

func (failingUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, errors.New("connection refused")
}

func (failingUsers) Fetch(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	return nil, 0, errors.New("connection refused")
}

// Helpers

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %v", err)
	return appErr.Code
}

type fixture struct {
	store     *memory.Store
	users     domain.UserUsecase
	companies domain.CompanyUsecase
	jobs      domain.JobUsecase
	files     *fakeFiles
}

func newFixture(t *testing.T, cascade bool) *fixture {
	t.Helper()
	store := memory.NewStore()
	files := &fakeFiles{}
	return &fixture{
		store:     store,
		users:     usecase.NewUserUsecase(store, ownerAuthorizer{}, plainHasher{}, fakeResizer{}, files),
		companies: usecase.NewCompanyUsecase(store, ownerAuthorizer{}, plainHasher{}, cascade),
		jobs:      usecase.NewJobUsecase(store, ownerAuthorizer{}),
		files:     files,
	}
}

func (f *fixture) company(t *testing.T, handle string) *domain.Company {
	t.Helper()
	c, err := f.companies.CreateCompany(context.Background(), &domain.Company{Handle: handle, Name: handle + " inc", Password: "secret123"})
	require.NoError(t, err)
	return c
}

func (f *fixture) user(t *testing.T, username string, companyID *string) *domain.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), &domain.User{
		Username: username, Email: username + "@example.com", Password: "secret123",
		FirstName: "First", LastName: "Last", CurrentCompanyID: companyID,
	})
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string { return &s }

// Users

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	acme := f.company(t, "acme")

	t.Run("Should hash password, cache company name and join employees", func(t *testing.T) {
		u := f.user(t, "alice", &acme.ID)
		assert.NotEmpty(t, u.ID)
		assert.Empty(t, u.Password)
		assert.Equal(t, "acme inc", *u.CurrentCompanyName)

		stored, err := f.store.Users().GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "hashed:secret123", stored.Password)

		company, err := f.store.Companies().GetByID(ctx, acme.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{u.ID}, company.Employees)
	})

	t.Run("Should reject duplicate username", func(t *testing.T) {
		_, err := f.users.CreateUser(ctx, &domain.User{Username: "alice", Email: "new@example.com", Password: "secret123"})
		assert.Equal(t, http.StatusConflict, statusOf(t, err))
		assert.Contains(t, err.Error(), "username 'alice' is taken")
	})

	t.Run("Should reject duplicate email with a distinct message", func(t *testing.T) {
		_, err := f.users.CreateUser(ctx, &domain.User{Username: "alice2", Email: "alice@example.com", Password: "secret123"})
		assert.Equal(t, http.StatusConflict, statusOf(t, err))
		assert.Contains(t, err.Error(), "email address")
	})

	t.Run("Should reject unknown current company", func(t *testing.T) {
		_, err := f.users.CreateUser(ctx, &domain.User{Username: "bob", Email: "bob@example.com", Password: "secret123", CurrentCompanyID: strPtr("nope")})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

		_, err = f.store.Users().GetByUsername(ctx, "bob")
		assert.ErrorIs(t, err, domain.ErrNotFound, "nothing is written on failure")
	})

	t.Run("Should name every dangling experience entry by index", func(t *testing.T) {
		_, err := f.users.CreateUser(ctx, &domain.User{
			Username: "carol", Email: "carol@example.com", Password: "secret123",
			Experience: []domain.Experience{
				{JobTitle: "dev", CompanyID: strPtr("ghost")},
				{JobTitle: "ops", CompanyID: &acme.ID},
				{JobTitle: "qa", CompanyID: strPtr("phantom")},
			},
		})
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusBadRequest, appErr.Code)

		fields := appErr.Details.([]validation.FieldError)
		require.Len(t, fields, 2)
		assert.Equal(t, "data.experience[0].companyId", fields[0].Field)
		assert.Equal(t, "data.experience[2].companyId", fields[1].Field)
	})
}

func TestUpdateUserMovesEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	acme := f.company(t, "acme")
	globex := f.company(t, "globex")
	alice := f.user(t, "alice", &acme.ID)

	updated, err := f.users.UpdateUser(ctx, "Bearer user:alice", "alice", &domain.UserPatch{CurrentCompanyID: &globex.ID})
	require.NoError(t, err)
	assert.Equal(t, globex.ID, *updated.CurrentCompanyID)
	assert.Equal(t, "globex inc", *updated.CurrentCompanyName)

	oldCo, _ := f.store.Companies().GetByID(ctx, acme.ID)
	newCo, _ := f.store.Companies().GetByID(ctx, globex.ID)
	assert.NotContains(t, oldCo.Employees, alice.ID)
	assert.Equal(t, []string{alice.ID}, newCo.Employees)

	t.Run("Should detach on empty company id", func(t *testing.T) {
		updated, err := f.users.UpdateUser(ctx, "Bearer user:alice", "alice", &domain.UserPatch{CurrentCompanyID: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, updated.CurrentCompanyID)
		assert.Nil(t, updated.CurrentCompanyName)

		newCo, _ := f.store.Companies().GetByID(ctx, globex.ID)
		assert.Empty(t, newCo.Employees)
	})

	t.Run("Should roll back when the new company is missing", func(t *testing.T) {
		_, err := f.users.UpdateUser(ctx, "Bearer user:alice", "alice", &domain.UserPatch{
			FirstName:        strPtr("Changed"),
			CurrentCompanyID: strPtr("ghost"),
		})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

		stored, _ := f.store.Users().GetByUsername(ctx, "alice")
		assert.Equal(t, "First", stored.FirstName)
	})
}

func TestUpdateUserAuthorization(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	authz := new(MockAuthorizer)
	uc := usecase.NewUserUsecase(store, authz, plainHasher{}, fakeResizer{}, &fakeFiles{})

	authz.On("Authorize", "Bearer user:mallory", auth.User("alice")).Return(apperror.Forbidden("nope")).Once()
	_, err := uc.UpdateUser(ctx, "Bearer user:mallory", "alice", &domain.UserPatch{})
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	authz.On("Authorize", "Bearer user:alice", auth.User("alice")).Return(nil).Once()
	_, err = uc.UpdateUser(ctx, "Bearer user:alice", "alice", &domain.UserPatch{})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	authz.AssertExpectations(t)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.user(t, "alice", nil)

	_, err := f.users.UpdateUser(ctx, "Bearer user:alice", "alice", &domain.UserPatch{Password: strPtr("n3w-password")})
	require.NoError(t, err)

	stored, _ := f.store.Users().GetByUsername(ctx, "alice")
	assert.Equal(t, "hashed:n3w-password", stored.Password)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	acme := f.company(t, "acme")
	f.user(t, "alice", &acme.ID)

	require.NoError(t, f.users.DeleteUser(ctx, "Bearer user:alice", "alice"))

	company, _ := f.store.Companies().GetByID(ctx, acme.ID)
	assert.Empty(t, company.Employees)

	err := f.users.DeleteUser(ctx, "Bearer user:alice", "alice")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestUpdatePhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.user(t, "alice", nil)

	u, err := f.users.UpdatePhoto(ctx, "Bearer user:alice", "alice", []byte("jpeg"))
	require.NoError(t, err)
	require.Len(t, f.files.keys, 1)
	assert.Contains(t, f.files.keys[0], "users/"+alice.ID+"/")
	assert.Equal(t, "https://cdn.example.com/"+f.files.keys[0], *u.Photo)

	bad := usecase.NewUserUsecase(f.store, ownerAuthorizer{}, plainHasher{}, fakeResizer{err: errors.New("unknown format")}, f.files)
	_, err = bad.UpdatePhoto(ctx, "Bearer user:alice", "alice", []byte("text"))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.Empty(t, f.files.deleted)
}

func TestUpdatePhotoRemovesOrphanedUpload(t *testing.T) {
	ctx := context.Background()
	files := &fakeFiles{}
	authz := new(MockAuthorizer)
	store := memory.NewStore()
	uc := usecase.NewUserUsecase(store, authz, plainHasher{}, fakeResizer{}, files)
	_, err := uc.CreateUser(ctx, &domain.User{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	// The token is accepted for the upload but rejected by the follow-up update.
	authz.On("Authorize", "Bearer user:alice", auth.User("alice")).Return(nil).Once()
	authz.On("Authorize", "Bearer user:alice", auth.User("alice")).Return(apperror.Unauthorized("expired")).Once()

	_, err = uc.UpdatePhoto(ctx, "Bearer user:alice", "alice", []byte("jpeg"))
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	require.Len(t, files.keys, 1)
	assert.Equal(t, files.keys, files.deleted)

	u, err := uc.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, u.Photo)
	authz.AssertExpectations(t)
}

func TestApplyToJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	acme := f.company(t, "acme")
	f.user(t, "alice", nil)
	job, err := f.jobs.CreateJob(ctx, "Bearer company:acme", &domain.Job{Title: "Gopher", Salary: 1, Equity: 0.1, CompanyID: acme.ID})
	require.NoError(t, err)

	u, err := f.users.ApplyToJob(ctx, "Bearer user:alice", job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{job.ID}, u.Applied)

	u, err = f.users.ApplyToJob(ctx, "Bearer user:alice", job.ID)
	require.NoError(t, err)
	assert.Len(t, u.Applied, 1, "applying twice is idempotent")

	_, err = f.users.ApplyToJob(ctx, "Bearer user:alice", "missing")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	_, err = f.users.ApplyToJob(ctx, "Bearer company:acme", job.ID)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	f.user(t, "acme", nil)
	_, err = f.users.ApplyToJob(ctx, "Bearer company:acme", job.ID)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err), "a company token cannot apply as a user with the same name")
}

func TestStoreFailureIsInternal(t *testing.T) {
	uc := usecase.NewUserUsecase(failingStore{}, ownerAuthorizer{}, plainHasher{}, fakeResizer{}, &fakeFiles{})

	_, err := uc.GetUser(context.Background(), "alice")
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.Equal(t, "Internal Server Error", err.Error(), "driver details are not exposed")

	_, _, err = uc.ListUsers(context.Background(), domain.Pagination{Limit: 10})
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

// Companies

func TestCompanyLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	acme := f.company(t, "acme")
	assert.Empty(t, acme.Password)
	assert.Equal(t, []string{}, acme.Employees)

	_, err := f.companies.CreateCompany(ctx, &domain.Company{Handle: "acme", Name: "Other", Password: "secret123"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	_, err = f.companies.GetCompany(ctx, "initech")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestRenameCompanyRefreshesUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	acme := f.company(t, "acme")
	_, err := f.users.CreateUser(ctx, &domain.User{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
		CurrentCompanyID: &acme.ID,
		Experience:       []domain.Experience{{JobTitle: "dev", CompanyID: &acme.ID}},
	})
	require.NoError(t, err)

	_, err = f.companies.UpdateCompany(ctx, "Bearer company:acme", "acme", &domain.CompanyPatch{Name: strPtr("Acme Corp")})
	require.NoError(t, err)

	u, _ := f.users.GetUser(ctx, "alice")
	assert.Equal(t, "Acme Corp", *u.CurrentCompanyName)
	assert.Equal(t, "Acme Corp", u.Experience[0].CompanyName)

	_, err = f.companies.UpdateCompany(ctx, "Bearer user:alice", "acme", &domain.CompanyPatch{Name: strPtr("Hijacked")})
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))
}

func TestDeleteCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse while referenced", func(t *testing.T) {
		f := newFixture(t, false)
		acme := f.company(t, "acme")
		_, err := f.jobs.CreateJob(ctx, "Bearer company:acme", &domain.Job{Title: "Gopher", CompanyID: acme.ID})
		require.NoError(t, err)

		err = f.companies.DeleteCompany(ctx, "Bearer company:acme", "acme")
		assert.Equal(t, http.StatusConflict, statusOf(t, err))
	})

	t.Run("Should cascade when enabled", func(t *testing.T) {
		f := newFixture(t, true)
		acme := f.company(t, "acme")
		f.user(t, "alice", &acme.ID)
		_, err := f.jobs.CreateJob(ctx, "Bearer company:acme", &domain.Job{Title: "Gopher", CompanyID: acme.ID})
		require.NoError(t, err)

		require.NoError(t, f.companies.DeleteCompany(ctx, "Bearer company:acme", "acme"))

		jobs, total, _ := f.jobs.ListJobs(ctx, domain.Pagination{Limit: 10})
		assert.Empty(t, jobs)
		assert.Zero(t, total)

		u, _ := f.users.GetUser(ctx, "alice")
		assert.Nil(t, u.CurrentCompanyID)
		assert.Nil(t, u.CurrentCompanyName)
	})
}

// Jobs

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	acme := f.company(t, "acme")

	job, err := f.jobs.CreateJob(ctx, "Bearer company:acme", &domain.Job{Title: "Gopher", Salary: 100, Equity: 0.5, CompanyID: acme.ID})
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)

	_, err = f.jobs.CreateJob(ctx, "Bearer company:acme", &domain.Job{Title: "Gopher", CompanyID: "ghost"})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	_, err = f.jobs.CreateJob(ctx, "", &domain.Job{Title: "Gopher", CompanyID: "ghost"})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err), "missing company wins over a missing token")

	_, err = f.jobs.CreateJob(ctx, "Bearer company:globex", &domain.Job{Title: "Gopher", CompanyID: acme.ID})
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))
}

func TestUpdateJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	acme := f.company(t, "acme")
	globex := f.company(t, "globex")
	job, err := f.jobs.CreateJob(ctx, "Bearer company:acme", &domain.Job{Title: "Gopher", Salary: 100, Equity: 0.5, CompanyID: acme.ID})
	require.NoError(t, err)

	updated, err := f.jobs.UpdateJob(ctx, "Bearer company:acme", job.ID, &domain.JobPatch{Title: strPtr("Senior Gopher")})
	require.NoError(t, err)
	assert.Equal(t, "Senior Gopher", updated.Title)
	assert.Equal(t, 100.0, updated.Salary)
	assert.Equal(t, 0.5, updated.Equity)
	assert.Equal(t, acme.ID, updated.CompanyID)

	_, err = f.jobs.UpdateJob(ctx, "Bearer company:acme", job.ID, &domain.JobPatch{CompanyID: strPtr("ghost")})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = f.jobs.UpdateJob(ctx, "Bearer company:acme", job.ID, &domain.JobPatch{CompanyID: &globex.ID})
	assert.Equal(t, http.StatusForbidden, statusOf(t, err), "caller must own the target company")

	_, err = f.jobs.UpdateJob(ctx, "Bearer company:globex", job.ID, &domain.JobPatch{Title: strPtr("Stolen")})
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	_, err = f.jobs.UpdateJob(ctx, "Bearer company:acme", "missing", &domain.JobPatch{})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	acme := f.company(t, "acme")
	job, err := f.jobs.CreateJob(ctx, "Bearer company:acme", &domain.Job{Title: "Gopher", CompanyID: acme.ID})
	require.NoError(t, err)

	deleted, err := f.jobs.DeleteJob(ctx, "Bearer company:acme", job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, deleted.ID)

	_, err = f.jobs.GetJob(ctx, job.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

// Auth

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.company(t, "acme")
	f.user(t, "alice", nil)
	uc := usecase.NewAuthUsecase(f.store, plainHasher{}, fakeIssuer{}, nil)

	token, err := uc.LoginUser(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "token-for-user:alice", token)

	token, err = uc.LoginCompany(ctx, "acme", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "token-for-company:acme", token)

	_, err = uc.LoginUser(ctx, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = uc.LoginCompany(ctx, "nobody", "secret123")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestLoginLockout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.user(t, "alice", nil)
	guard := security.NewLoginTracker(security.LoginTrackerConfig{MaxAttempts: 3, AttemptWindow: time.Minute, BlockDuration: time.Minute}, nil, nil)
	uc := usecase.NewAuthUsecase(f.store, plainHasher{}, fakeIssuer{}, guard)

	for i := 0; i < 2; i++ {
		_, err := uc.LoginUser(ctx, "alice", "wrong")
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	}

	_, err := uc.LoginUser(ctx, "alice", "wrong")
	assert.Equal(t, http.StatusTooManyRequests, statusOf(t, err), "third failure blocks")

	_, err = uc.LoginUser(ctx, "alice", "secret123")
	assert.Equal(t, http.StatusTooManyRequests, statusOf(t, err), "correct password is refused while blocked")

	_, err = uc.LoginCompany(ctx, "alice", "secret123")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err), "users and companies are tracked separately")
}

func TestLoginClearsFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.user(t, "alice", nil)
	guard := security.NewLoginTracker(security.LoginTrackerConfig{MaxAttempts: 2}, nil, nil)
	uc := usecase.NewAuthUsecase(f.store, plainHasher{}, fakeIssuer{}, guard)

	_, err := uc.LoginUser(ctx, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	_, err = uc.LoginUser(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = uc.LoginUser(ctx, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err), "the earlier failure was forgotten")
}

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()

	status, ok := usecase.NewHealthUsecase(map[string]usecase.Pinger{
		"database": usecase.PingFunc(func(context.Context) error { return nil }),
	}).Check(ctx)
	assert.True(t, ok)
	assert.Equal(t, "ok", status["database"])

	status, ok = usecase.NewHealthUsecase(map[string]usecase.Pinger{
		"redis": usecase.PingFunc(func(context.Context) error { return errors.New("timeout") }),
	}).Check(ctx)
	assert.False(t, ok)
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "down", status["redis"])
}

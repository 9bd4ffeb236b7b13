package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const userColumns = `id, username, password, first_name, last_name, email, photo,
	current_company_id, current_company_name, skills, education, experience, applied,
	created_at, updated_at`

type userRepo struct {
	db DBTX
}

// userDocs holds the JSONB encodings of the nested user fields
type userDocs struct {
	education  *string
	experience string
}

func encodeUserDocs(user *domain.User) (userDocs, error) {
	var docs userDocs
	if user.Education != nil {
		b, err := json.Marshal(user.Education)
		if err != nil {
			return docs, fmt.Errorf("encode education: %w", err)
		}
		s := string(b)
		docs.education = &s
	}

	experience := user.Experience
	if experience == nil {
		experience = []domain.Experience{}
	}
	b, err := json.Marshal(experience)
	if err != nil {
		return docs, fmt.Errorf("encode experience: %w", err)
	}
	docs.experience = string(b)
	return docs, nil
}

// textArray encodes values for a NOT NULL text[] column; pq.Array(nil)
// would send NULL.
func textArray(values []string) interface{} {
	if values == nil {
		values = []string{}
	}
	return pq.Array(values)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user       domain.User
		education  []byte
		experience []byte
	)
	err := row.Scan(
		&user.ID, &user.Username, &user.Password, &user.FirstName, &user.LastName, &user.Email, &user.Photo,
		&user.CurrentCompanyID, &user.CurrentCompanyName, pq.Array(&user.Skills), &education, &experience, pq.Array(&user.Applied),
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(education) > 0 {
		if err := json.Unmarshal(education, &user.Education); err != nil {
			return nil, fmt.Errorf("decode education: %w", err)
		}
	}
	if len(experience) > 0 {
		if err := json.Unmarshal(experience, &user.Experience); err != nil {
			return nil, fmt.Errorf("decode experience: %w", err)
		}
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}
	if user.Applied == nil {
		user.Applied = []string{}
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	docs, err := encodeUserDocs(user)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, username, password, first_name, last_name, email, photo,
                  current_company_id, current_company_name, skills, education, experience, applied,
                  created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::jsonb, $12::jsonb, $13, $14, $15)`
	_, err = r.db.Exec(ctx, query,
		user.ID, user.Username, user.Password, user.FirstName, user.LastName, user.Email, user.Photo,
		user.CurrentCompanyID, user.CurrentCompanyName, textArray(user.Skills), docs.education, docs.experience, textArray(user.Applied),
		user.CreatedAt, user.UpdatedAt,
	)
	return mapError(err)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (r *userRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update rewrites every mutable column of the user identified by user.ID.
func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	docs, err := encodeUserDocs(user)
	if err != nil {
		return err
	}

	query := `UPDATE users SET password = $2, first_name = $3, last_name = $4, email = $5, photo = $6,
                  current_company_id = $7, current_company_name = $8, skills = $9,
                  education = $10::jsonb, experience = $11::jsonb, applied = $12, updated_at = $13
              WHERE id = $1`
	return expectOne(r.db.Exec(ctx, query,
		user.ID, user.Password, user.FirstName, user.LastName, user.Email, user.Photo,
		user.CurrentCompanyID, user.CurrentCompanyName, textArray(user.Skills),
		docs.education, docs.experience, textArray(user.Applied), user.UpdatedAt,
	))
}

func (r *userRepo) Delete(ctx context.Context, username string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username))
}

func (r *userRepo) RenameCompany(ctx context.Context, companyID, name string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET current_company_name = $2 WHERE current_company_id = $1`,
		companyID, name)
	if err != nil {
		return mapError(err)
	}

	query := `UPDATE users SET experience = (
                  SELECT jsonb_agg(
                      CASE WHEN e->>'companyId' = $1::text
                           THEN jsonb_set(e, '{companyName}', to_jsonb($2::text))
                           ELSE e END
                      ORDER BY ord)
                  FROM jsonb_array_elements(experience) WITH ORDINALITY AS x(e, ord))
              WHERE experience @> jsonb_build_array(jsonb_build_object('companyId', $1::text))`
	_, err = r.db.Exec(ctx, query, companyID, name)
	return mapError(err)
}

func (r *userRepo) DetachCompany(ctx context.Context, companyID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET current_company_id = NULL, current_company_name = NULL WHERE current_company_id = $1`,
		companyID)
	return mapError(err)
}

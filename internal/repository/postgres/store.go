package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type store struct {
	pool *pgxpool.Pool
	db   DBTX
	inTx bool
}

func NewStore(pool *pgxpool.Pool) domain.Store {
	return &store{pool: pool, db: pool}
}

func (s *store) Users() domain.UserRepository {
	return &userRepo{db: s.db}
}

func (s *store) Companies() domain.CompanyRepository {
	return &companyRepo{db: s.db}
}

func (s *store) Jobs() domain.JobRepository {
	return &jobRepo{db: s.db}
}

func (s *store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, &store{pool: s.pool, db: tx, inTx: true})
	})
}

// Package memory is an in-process domain.Store used for local development
// and tests. Records are cloned on the way in and out.
package memory

import (
	"context"
	"sync"

	"go-jobboard-backend/internal/domain"
)

type state struct {
	users     map[string]*domain.User
	userOrder []string
	companies map[string]*domain.Company
	compOrder []string
	jobs      map[string]*domain.Job
	jobOrder  []string
}

func newState() state {
	return state{
		users:     map[string]*domain.User{},
		companies: map[string]*domain.Company{},
		jobs:      map[string]*domain.Job{},
	}
}

func (s *state) clone() state {
	cp := newState()
	for id, u := range s.users {
		cp.users[id] = u.Clone()
	}
	for id, c := range s.companies {
		cp.companies[id] = c.Clone()
	}
	for id, j := range s.jobs {
		job := *j
		cp.jobs[id] = &job
	}
	cp.userOrder = append([]string(nil), s.userOrder...)
	cp.compOrder = append([]string(nil), s.compOrder...)
	cp.jobOrder = append([]string(nil), s.jobOrder...)
	return cp
}

type database struct {
	// txMu serializes writers so a rolled-back transaction can restore its
	// snapshot without discarding anyone else's write.
	txMu sync.Mutex
	mu   sync.RWMutex
	data state
}

type Store struct {
	db   *database
	inTx bool
}

func NewStore() *Store {
	return &Store{db: &database{data: newState()}}
}

func (s *Store) Users() domain.UserRepository {
	return &userRepo{s: s}
}

func (s *Store) Companies() domain.CompanyRepository {
	return &companyRepo{s: s}
}

func (s *Store) Jobs() domain.JobRepository {
	return &jobRepo{s: s}
}

// WithinTx snapshots the data, runs fn and restores the snapshot if fn
// fails. Transactions are serialized with every other write.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	s.db.txMu.Lock()
	defer s.db.txMu.Unlock()

	s.db.mu.RLock()
	snapshot := s.db.data.clone()
	s.db.mu.RUnlock()

	if err := fn(ctx, &Store{db: s.db, inTx: true}); err != nil {
		s.db.mu.Lock()
		s.db.data = snapshot
		s.db.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) write() func() {
	if !s.inTx {
		s.db.txMu.Lock()
	}
	s.db.mu.Lock()
	return func() {
		s.db.mu.Unlock()
		if !s.inTx {
			s.db.txMu.Unlock()
		}
	}
}

func (s *Store) read() func() {
	s.db.mu.RLock()
	return s.db.mu.RUnlock
}

// page applies offset and limit to an ordered id list.
func page(order []string, limit, offset int) []string {
	if offset >= len(order) || limit <= 0 {
		return nil
	}
	end := offset + limit
	if end > len(order) || end < offset {
		end = len(order)
	}
	return order[offset:end]
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"example.com/notes-api/internal/notes"
)

// Pool is the connection source; *db.Pool satisfies it.
type Pool interface {
	Get(ctx context.Context) (*sql.DB, error)
}

// Service validates requests and runs them against storage, ensuring the
// schema on the first call that reaches the database. It implements
// notes.Store.
type Service struct {
	pool   Pool
	schema *notes.Schema
	log    *slog.Logger
}

var _ notes.Store = (*Service)(nil)

func New(pool Pool, schema *notes.Schema, log *slog.Logger) *Service {
	return &Service{pool: pool, schema: schema, log: log}
}

// repo returns a repository bound to the shared pool. Two requests may both
// see the schema as not ready and both run Ensure; every schema step is
// idempotent, so no lock is taken.
func (s *Service) repo(ctx context.Context) (*notes.Repository, error) {
	db, err := s.pool.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get pool: %w", err)
	}
	if !s.schema.Ready() {
		if err := s.schema.Ensure(ctx, db); err != nil {
			return nil, err
		}
		s.log.InfoContext(ctx, "notes schema ensured")
	}
	return notes.NewRepository(db), nil
}

func (s *Service) List(ctx context.Context) ([]notes.Note, error) {
	r, err := s.repo(ctx)
	if err != nil {
		return nil, err
	}
	return r.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (notes.Note, error) {
	r, err := s.repo(ctx)
	if err != nil {
		return notes.Note{}, err
	}
	return r.Get(ctx, id)
}

// Create validates before touching storage.
func (s *Service) Create(ctx context.Context, req notes.CreateNoteRequest) (notes.Note, error) {
	in, err := notes.ValidateCreate(req)
	if err != nil {
		return notes.Note{}, err
	}
	r, err := s.repo(ctx)
	if err != nil {
		return notes.Note{}, err
	}
	return r.Create(ctx, in)
}

// Update validates before touching storage.
func (s *Service) Update(ctx context.Context, id int64, req notes.UpdateNoteRequest) (notes.Note, error) {
	p, err := notes.ValidateUpdate(req)
	if err != nil {
		return notes.Note{}, err
	}
	r, err := s.repo(ctx)
	if err != nil {
		return notes.Note{}, err
	}
	return r.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	r, err := s.repo(ctx)
	if err != nil {
		return err
	}
	return r.Delete(ctx, id)
}

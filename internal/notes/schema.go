package notes

import (
	"context"
	"fmt"
	"sync/atomic"

	"example.com/notes-api/internal/db"
)

// Schema statements, applied in order. Each one is idempotent, so running the
// sequence again, or from two requests at once, leaves the same table state.
const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS notes (
			id SERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT 'Anonym',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`
	nameDefaultSQL  = `ALTER TABLE notes ALTER COLUMN name SET DEFAULT 'Anonym'`
	backfillNameSQL = `UPDATE notes SET name = 'Anonym' WHERE name IS NULL OR name = ''`
)

var schemaSteps = []struct {
	name  string
	query string
}{
	{"create table", createTableSQL},
	{"set name default", nameDefaultSQL},
	{"backfill names", backfillNameSQL},
}

// Schema makes sure the notes table exists with its defaults. One value is
// shared by the whole process; ready flips to true only after a full
// successful run and is never reset.
type Schema struct {
	ready atomic.Bool
}

func NewSchema() *Schema { return &Schema{} }

// Ready reports whether Ensure has completed successfully in this process.
func (s *Schema) Ready() bool { return s.ready.Load() }

// Ensure runs every schema step. On failure the flag stays unset so the next
// caller retries the whole sequence.
func (s *Schema) Ensure(ctx context.Context, conn db.DBTX) error {
	for _, step := range schemaSteps {
		if _, err := conn.ExecContext(ctx, step.query); err != nil {
			return fmt.Errorf("ensure schema: %s: %w", step.name, err)
		}
	}
	s.ready.Store(true)
	return nil
}

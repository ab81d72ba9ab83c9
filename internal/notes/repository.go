package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"example.com/notes-api/internal/db"
)

// ListLimit caps the number of notes returned by List.
const ListLimit = 50

const (
	listSQL = `
		SELECT id, name, content, created_at
		FROM notes
		ORDER BY created_at DESC, id DESC
		LIMIT $1`
	getSQL = `
		SELECT id, name, content, created_at
		FROM notes
		WHERE id = $1`
	insertSQL = `
		INSERT INTO notes (content, name) VALUES ($1, $2)
		RETURNING id, name, content, created_at`
	updateNameSQL = `
		UPDATE notes SET name = $1
		WHERE id = $2
		RETURNING id, name, content, created_at`
	updateContentSQL = `
		UPDATE notes SET content = $1
		WHERE id = $2
		RETURNING id, name, content, created_at`
	updateBothSQL = `
		UPDATE notes SET name = $1, content = $2
		WHERE id = $3
		RETURNING id, name, content, created_at`
	deleteSQL = `DELETE FROM notes WHERE id = $1`
)

// Repository runs single-statement queries against the notes table. It holds
// no state besides the connection and is cheap to build per request.
type Repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) *Repository {
	return &Repository{db: conn}
}

func (r *Repository) List(ctx context.Context) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx, listSQL, ListLimit)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (r *Repository) Get(ctx context.Context, id int64) (Note, error) {
	if !storableID(id) {
		return Note{}, ErrNotFound
	}
	return scanNote(r.db.QueryRowContext(ctx, getSQL, id), "get note")
}

func (r *Repository) Create(ctx context.Context, n NewNote) (Note, error) {
	return scanNote(r.db.QueryRowContext(ctx, insertSQL, n.Content, n.Name), "create note")
}

func (r *Repository) Update(ctx context.Context, id int64, p Patch) (Note, error) {
	query, args, err := p.statement(id)
	if err != nil {
		return Note{}, err
	}
	if !storableID(id) {
		return Note{}, ErrNotFound
	}
	return scanNote(r.db.QueryRowContext(ctx, query, args...), "update note")
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if !storableID(id) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, deleteSQL, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	a, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if a == 0 {
		return ErrNotFound
	}
	return nil
}

// storableID reports whether id fits the SERIAL (int4) id column. Larger
// ids cannot name a row, and the driver refuses to bind them.
func storableID(id int64) bool {
	return id > 0 && id <= math.MaxInt32
}

// statement picks the fixed UPDATE shape matching the fields present.
func (p Patch) statement(id int64) (string, []any, error) {
	switch {
	case p.Name != nil && p.Content != nil:
		return updateBothSQL, []any{*p.Name, *p.Content, id}, nil
	case p.Name != nil:
		return updateNameSQL, []any{*p.Name, id}, nil
	case p.Content != nil:
		return updateContentSQL, []any{*p.Content, id}, nil
	default:
		return "", nil, invalid(MsgNothingToUpdate)
	}
}

func scanNote(row *sql.Row, op string) (Note, error) {
	var n Note
	err := row.Scan(&n.ID, &n.Name, &n.Content, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	out := make([]Note, 0, ListLimit)
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Name, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

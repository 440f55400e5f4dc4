package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cwaller/notehub/internal/domain/note"
	"github.com/cwaller/notehub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewNotesRepo(pool *pgxpool.Pool, prom *observability.Prom) *NotesRepo {
	return &NotesRepo{pool: pool, prom: prom}
}

func (r *NotesRepo) Create(ctx context.Context, n note.Note) error {
	return r.prom.ObserveDB("note_insert", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO notes (id, owner, title, content, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			n.ID, n.Owner, n.Title, n.Content, n.CreatedAt, n.UpdatedAt,
		)
		return err
	})
}

func (r *NotesRepo) GetByID(ctx context.Context, id string) (note.Note, error) {
	var n note.Note

	err := r.prom.ObserveDB("note_get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, owner, title, content, created_at, updated_at
			 FROM notes
			 WHERE id = $1`,
			id,
		).Scan(&n.ID, &n.Owner, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return note.Note{}, note.ErrNotFound
		}

		return note.Note{}, err
	}

	return n, nil
}

// ListByOwner returns the owner's newest notes, at most limit of them.
func (r *NotesRepo) ListByOwner(ctx context.Context, owner string, limit int) ([]note.Note, error) {
	out := make([]note.Note, 0, limit)

	err := r.prom.ObserveDB("note_list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, owner, title, content, created_at, updated_at
			 FROM notes
			 WHERE owner = $1
			 ORDER BY created_at DESC, id
			 LIMIT $2`,
			owner, limit,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var n note.Note

			err = rows.Scan(&n.ID, &n.Owner, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)

			if err != nil {
				return err
			}

			out = append(out, n)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *NotesRepo) Update(ctx context.Context, id string, req note.UpdateNoteRequest) (note.Note, error) {
	var n note.Note

	err := r.prom.ObserveDB("note_update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE notes
				SET title = $2,
				    content = $3,
				    updated_at = $4
			 WHERE id = $1
			 RETURNING id, owner, title, content, created_at, updated_at`,
			id, req.Title, req.Content, time.Now().UTC(),
		).Scan(&n.ID, &n.Owner, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return note.Note{}, note.ErrNotFound
		}

		return note.Note{}, err
	}

	return n, nil
}

func (r *NotesRepo) Delete(ctx context.Context, id string) error {
	var affected int64

	err := r.prom.ObserveDB("note_delete", func() error {
		res, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)

		if err != nil {
			return err
		}

		affected = res.RowsAffected()
		return nil
	})

	if err != nil {
		return err
	}

	// if no rows were deleted as a result return a not found error
	if affected == 0 {
		return note.ErrNotFound
	}

	return nil
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cwaller/notehub/internal/domain/note"
)

type NotesRepo struct {
	mu    sync.RWMutex
	items map[string]note.Note
}

func NewNotesRepo() *NotesRepo {
	return &NotesRepo{
		items: make(map[string]note.Note),
	}
}

func (r *NotesRepo) Create(_ context.Context, n note.Note) error {
	r.mu.Lock()
	r.items[n.ID] = n
	r.mu.Unlock()

	return nil
}

func (r *NotesRepo) GetByID(_ context.Context, id string) (note.Note, error) {
	r.mu.RLock()
	n, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return note.Note{}, note.ErrNotFound
	}

	return n, nil
}

func (r *NotesRepo) ListByOwner(_ context.Context, owner string, limit int) ([]note.Note, error) {
	r.mu.RLock()

	out := make([]note.Note, 0)

	for _, n := range r.items {
		if n.Owner == owner {
			out = append(out, n)
		}
	}
	r.mu.RUnlock()

	// newest first, id as tiebreaker for stable ordering
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *NotesRepo) Update(_ context.Context, id string, req note.UpdateNoteRequest) (note.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.items[id]

	if !ok {
		return note.Note{}, note.ErrNotFound
	}

	n.Title = req.Title
	n.Content = req.Content
	n.UpdatedAt = time.Now().UTC()

	r.items[id] = n

	return n, nil
}

func (r *NotesRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return note.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cwaller/notehub/internal/domain/note"
)

func TestNotesRepoCRUD(t *testing.T) {
	repo := NewNotesRepo()
	ctx := context.Background()

	n := note.NewFromCreateRequest("sam@example.com", note.CreateNoteRequest{
		Title:   "groceries",
		Content: "milk, eggs",
	})

	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, n.ID)

	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if got.Owner != "sam@example.com" || got.Title != "groceries" {
		t.Fatalf("got %+v", got)
	}

	updated, err := repo.Update(ctx, n.ID, note.UpdateNoteRequest{Title: "errands", Content: "milk"})

	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != "errands" || updated.Owner != "sam@example.com" {
		t.Fatalf("update result %+v", updated)
	}

	if err := repo.Delete(ctx, n.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err = repo.GetByID(ctx, n.ID)

	if !errors.Is(err, note.ErrNotFound) {
		t.Fatalf("got err %v after delete, want ErrNotFound", err)
	}
}

func TestNotesRepoMissingID(t *testing.T) {
	repo := NewNotesRepo()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, note.ErrNotFound) {
		t.Fatalf("GetByID: got %v, want ErrNotFound", err)
	}

	if _, err := repo.Update(ctx, "nope", note.UpdateNoteRequest{Title: "t", Content: "c"}); !errors.Is(err, note.ErrNotFound) {
		t.Fatalf("Update: got %v, want ErrNotFound", err)
	}

	if err := repo.Delete(ctx, "nope"); !errors.Is(err, note.ErrNotFound) {
		t.Fatalf("Delete: got %v, want ErrNotFound", err)
	}
}

func TestNotesRepoListByOwner(t *testing.T) {
	repo := NewNotesRepo()
	ctx := context.Background()

	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		n := note.NewFromCreateRequest("sam@example.com", note.CreateNoteRequest{Title: "t", Content: "c"})
		n.CreatedAt = base.Add(time.Duration(i) * time.Second)

		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	other := note.NewFromCreateRequest("eve@example.com", note.CreateNoteRequest{Title: "x", Content: "y"})

	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	notes, err := repo.ListByOwner(ctx, "sam@example.com", 3)

	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}

	if len(notes) != 3 {
		t.Fatalf("got %d notes, want cap of 3", len(notes))
	}

	// newest first
	for i := 1; i < len(notes); i++ {
		if notes[i].CreatedAt.After(notes[i-1].CreatedAt) {
			t.Fatalf("notes not in newest-first order: %v before %v", notes[i-1].CreatedAt, notes[i].CreatedAt)
		}
	}

	for _, n := range notes {
		if n.Owner != "sam@example.com" {
			t.Fatalf("foreign note leaked into listing: %+v", n)
		}
	}
}

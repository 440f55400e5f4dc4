package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/cwaller/notehub/internal/domain/user"
)

func TestUsersRepoCreateAndGet(t *testing.T) {
	repo := NewUsersRepo()
	ctx := context.Background()

	u, err := repo.Create(ctx, "sam@example.com", "hashed")

	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if u.ID == "" {
		t.Fatal("expected a generated id")
	}

	got, err := repo.GetByEmail(ctx, "sam@example.com")

	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}

	if got.PasswordHash != "hashed" {
		t.Fatalf("got hash %q", got.PasswordHash)
	}
}

func TestUsersRepoDuplicateEmail(t *testing.T) {
	repo := NewUsersRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, "sam@example.com", "h1"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := repo.Create(ctx, "sam@example.com", "h2")

	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestUsersRepoUnknownEmail(t *testing.T) {
	repo := NewUsersRepo()

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")

	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

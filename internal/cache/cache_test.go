package cache

import (
	"context"
	"testing"
	"time"

	"github.com/cwaller/notehub/internal/domain/note"
)

func TestMemoryCacheSetGetDelete(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	n := note.Note{ID: "id-1", Owner: "sam@example.com", Title: "t", Content: "c"}

	if _, hit := c.Get(ctx, "id-1"); hit {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Set(ctx, n)

	got, hit := c.Get(ctx, "id-1")

	if !hit {
		t.Fatal("expected hit after Set")
	}

	if got.Owner != n.Owner || got.Title != n.Title {
		t.Fatalf("got %+v, want %+v", got, n)
	}

	c.Delete(ctx, "id-1")

	if _, hit := c.Get(ctx, "id-1"); hit {
		t.Fatal("hit after Delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, note.Note{ID: "id-1"})

	time.Sleep(25 * time.Millisecond)

	if _, hit := c.Get(ctx, "id-1"); hit {
		t.Fatal("hit after TTL elapsed")
	}
}

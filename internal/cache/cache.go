package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cwaller/notehub/internal/domain/note"
)

// Notes is a read-through cache for single-note lookups. Entries are busted
// on update and delete, so a hit is never staler than the TTL.
type Notes interface {
	Get(ctx context.Context, id string) (note.Note, bool)
	Set(ctx context.Context, n note.Note)
	Delete(ctx context.Context, id string)
}

type entry struct {
	val note.Note
	exp time.Time
}

// Memory is the default Notes implementation when no redis address is
// configured.
type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Memory{
		ttl: ttl,
		m:   make(map[string]entry),
	}
}

func (c *Memory) Get(_ context.Context, id string) (note.Note, bool) {
	now := time.Now()
	c.mu.RLock()
	e, ok := c.m[id]
	c.mu.RUnlock()
	if !ok {
		return note.Note{}, false
	}

	if now.After(e.exp) {
		c.mu.Lock()
		delete(c.m, id)
		c.mu.Unlock()
		return note.Note{}, false
	}

	return e.val, true
}

func (c *Memory) Set(_ context.Context, n note.Note) {
	c.mu.Lock()
	c.m[n.ID] = entry{val: n, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *Memory) Delete(_ context.Context, id string) {
	c.mu.Lock()
	delete(c.m, id)
	c.mu.Unlock()
}

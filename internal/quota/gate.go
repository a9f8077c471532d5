package quota

import (
	"context"
	"sync"
)

// Gate serialises work per key. Entries are dropped once no goroutine holds
// or waits on them.
type Gate struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewGate() *Gate {
	return &Gate{slots: make(map[string]*slot)}
}

// Acquire blocks until key is free or ctx is done. The returned func
// releases the key and must be called exactly once.
func (g *Gate) Acquire(ctx context.Context, key string) (func(), error) {
	g.mu.Lock()
	s, ok := g.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		g.slots[key] = s
	}
	s.refs++
	g.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				g.drop(key, s)
			})
		}, nil
	case <-ctx.Done():
		g.drop(key, s)
		return nil, ctx.Err()
	}
}

func (g *Gate) drop(key string, s *slot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(g.slots, key)
	}
}

func (g *Gate) size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.slots)
}

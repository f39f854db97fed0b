package store

import (
	"github.com/taskmaster/dashboard/internal/ports"
)

type listener struct {
	id uint64
	fn func(ports.Change)
}

// Subscribe registers fn for every subsequent change. Listeners run
// synchronously, in registration order, while the store's write lock is
// held: they may read the store but must not mutate it.
func (s *Store) Subscribe(fn func(ports.Change)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextListen++
	id := s.nextListen
	s.listeners = append(s.listeners, &listener{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		kept := make([]*listener, 0, len(s.listeners))
		for _, l := range s.listeners {
			if l.id != id {
				kept = append(kept, l)
			}
		}
		s.listeners = kept
	}
}

func (s *Store) notify(change ports.Change) {
	for _, l := range s.listeners {
		l.fn(change)
	}
}

// Package auth holds the viewer's authentication state.
package auth

import "sync"

// Store holds the bearer token of the signed-in viewer. An empty token means
// the viewer is anonymous and limited to previews.
type Store struct {
	mu        sync.RWMutex
	token     string
	next      int
	listeners map[int]func(bool)
}

// NewStore creates a store, signed in when token is non-empty.
func NewStore(token string) *Store {
	return &Store{
		token:     token,
		listeners: make(map[int]func(bool)),
	}
}

// Authenticated reports whether a viewer is signed in.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the bearer token, "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Login signs the viewer in with token. An empty token signs out.
func (s *Store) Login(token string) {
	s.set(token)
}

// Logout signs the viewer out.
func (s *Store) Logout() {
	s.set("")
}

// OnChange registers fn to be called with the new state whenever the
// viewer signs in or out. The returned func unregisters it.
func (s *Store) OnChange(fn func(authenticated bool)) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) set(token string) {
	s.mu.Lock()
	was := s.token != ""
	s.token = token
	now := s.token != ""
	var fns []func(bool)
	if was != now {
		fns = make([]func(bool), 0, len(s.listeners))
		for _, fn := range s.listeners {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(now)
	}
}

package session

import "sync"

// State is the client's observable authentication display state. It reflects
// whatever token is currently stored; Refresh re-reads and re-decodes it and
// then notifies every subscribed observer.
type State struct {
	mu            sync.Mutex
	store         Store
	authenticated bool
	email         string
	name          string
	observers     map[int]func()
	nextID        int
}

// NewState creates a State backed by the given token store.
func NewState(store Store) *State {
	return &State{
		store:     store,
		observers: make(map[int]func()),
	}
}

// IsAuthenticated reports whether a decodable token is stored. This is a
// display hint only; it says nothing about whether the server would accept
// the token.
func (s *State) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Email returns the email claim of the stored token, or "".
func (s *State) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// Name returns the name claim of the stored token, or "".
func (s *State) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Subscribe registers an observer called after every Refresh. The returned
// function unsubscribes it.
func (s *State) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Refresh re-reads the stored token, decodes its payload, updates the
// display state, and notifies all observers. A missing or undecodable token
// resets to the unauthenticated state; it is never an error.
func (s *State) Refresh() {
	authenticated := false
	var email, name string

	if tok, err := s.store.Load(); err == nil && tok != "" {
		if claims, ok := DecodePayload(tok); ok {
			authenticated = true
			email = claims.Email
			name = claims.Name
		}
	}

	s.mu.Lock()
	s.authenticated = authenticated
	s.email = email
	s.name = name
	observers := make([]func(), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	// Observers run outside the lock; a panicking observer must not block
	// the others.
	for _, fn := range observers {
		notify(fn)
	}
}

func notify(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

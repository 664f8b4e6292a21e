package client

import "sync"

// Session holds the bearer token for an authenticated console run. It
// is injected into the Client rather than read from globals, so tests
// and multiple consoles can carry independent sessions.
//
// When the server answers 401 the session is invalidated exactly once
// and the Invalidated channel closes; whoever owns the UI loop selects
// on it and returns to the login screen.
type Session struct {
	mu    sync.RWMutex
	token string

	invalidateOnce sync.Once
	invalidated    chan struct{}
}

func NewSession(token string) *Session {
	return &Session{
		token:       token,
		invalidated: make(chan struct{}),
	}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Invalidated closes when the server rejects the session's token.
func (s *Session) Invalidated() <-chan struct{} {
	return s.invalidated
}

func (s *Session) invalidate() {
	s.invalidateOnce.Do(func() {
		s.mu.Lock()
		s.token = ""
		s.mu.Unlock()
		close(s.invalidated)
	})
}

// Package services contains the application controllers for GophChat: the
// session controller (authentication state and presence) and the chat
// controller (in-memory conversation state, polling sync, self-destruct).
//
// Failure policy: repository and crypto errors are caught at every operation
// boundary, logged, and collapsed into a single generic user-facing error
// string in controller state. Nothing propagates past a controller.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/cryptox"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/models"
	"github.com/dmitrijs2005/gophchat/internal/repositories/users"
	"golang.org/x/time/rate"
)

// SessionStatus is the authentication state of the client.
type SessionStatus string

const (
	// StatusLoading is the initial state, before storage is consulted.
	StatusLoading SessionStatus = "loading"

	StatusAuthenticated   SessionStatus = "authenticated"
	StatusUnauthenticated SessionStatus = "unauthenticated"
)

// SessionState is the renderable snapshot of the session controller.
type SessionState struct {
	Status  SessionStatus
	User    *models.User
	Loading bool
	Err     string
}

// SessionService orchestrates login, registration, logout, and the
// visibility-driven presence signal.
type SessionService struct {
	mu    sync.Mutex
	users users.Repository
	log   logging.Logger
	state SessionState

	// presence updates are throttled to bound write volume; this is a
	// best-effort signal, not a liveness protocol.
	presence *rate.Limiter
}

// NewSessionService returns a SessionService in the loading state.
func NewSessionService(repo users.Repository, log logging.Logger) *SessionService {
	return &SessionService{
		users:    repo,
		log:      log,
		state:    SessionState{Status: StatusLoading, Loading: true},
		presence: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// State returns a copy of the current session state.
func (s *SessionService) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if s.state.User != nil {
		u := s.state.User.Clone()
		st.User = &u
	}
	return st
}

// Authenticated reports whether a user is signed in.
func (s *SessionService) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Status == StatusAuthenticated
}

// User returns a copy of the signed-in user, or nil.
func (s *SessionService) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return nil
	}
	u := s.state.User.Clone()
	return &u
}

// Resume consults the session pointer in storage and lands in authenticated
// or unauthenticated. Called once on startup.
func (s *SessionService) Resume(ctx context.Context) {
	user, err := s.users.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.log.Error(ctx, "resuming session", "error", err)
		s.state.Status = StatusUnauthenticated
		return
	}
	if user == nil {
		s.state.Status = StatusUnauthenticated
		return
	}
	s.state.Status = StatusAuthenticated
	s.state.User = user
}

// Login authenticates with email and password. On failure the previous
// status is kept and a generic error message is set.
func (s *SessionService) Login(ctx context.Context, email, password string) {
	s.setLoading()

	// Simulated ZKP handshake: the digest is computed and discarded,
	// never compared against anything.
	_ = cryptox.HashCredentials(email, password)

	user, err := s.users.Login(ctx, email, password)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.log.Error(ctx, "login", "email", email, "error", err)
		s.state.Err = "Login failed"
		return
	}
	s.state.Status = StatusAuthenticated
	s.state.User = user
	s.state.Err = ""
}

// Register creates a new account and signs it in.
func (s *SessionService) Register(ctx context.Context, name, email, password string) {
	s.setLoading()

	user, err := s.users.Register(ctx, name, email, password)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.log.Error(ctx, "register", "email", email, "error", err)
		s.state.Err = "Registration failed"
		return
	}
	s.state.Status = StatusAuthenticated
	s.state.User = user
	s.state.Err = ""
}

// Logout clears the session pointer and returns to unauthenticated. The
// directory record's online flag is intentionally left as-is.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.users.Logout(ctx); err != nil {
		s.log.Error(ctx, "logout", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = StatusUnauthenticated
	s.state.User = nil
	s.state.Err = ""
}

// ClearError drops the current error message.
func (s *SessionService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = ""
}

// SetVisible records a foreground/background transition of the client
// surface, mirroring online/lastSeen into the directory. Updates are
// throttled to at most one per second; excess transitions are dropped.
func (s *SessionService) SetVisible(ctx context.Context, visible bool) {
	s.mu.Lock()
	user := s.state.User
	s.mu.Unlock()
	if user == nil {
		return
	}

	if !s.presence.Allow() {
		return
	}

	updated, err := s.users.UpdatePresence(ctx, user, visible)
	if err != nil {
		s.log.Error(ctx, "updating presence", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = updated
}

func (s *SessionService) setLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = true
}

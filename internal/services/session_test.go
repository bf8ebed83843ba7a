package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/kvstore"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newSession(t *testing.T) (*SessionService, users.Repository) {
	t.Helper()
	repo := users.NewKVRepository(kvstore.NewMemStore())
	return NewSessionService(repo, testLogger()), repo
}

func TestSessionService_InitialStateIsLoading(t *testing.T) {
	s, _ := newSession(t)

	st := s.State()
	assert.Equal(t, StatusLoading, st.Status)
	assert.True(t, st.Loading)
}

func TestSessionService_Resume(t *testing.T) {
	t.Run("no session pointer", func(t *testing.T) {
		s, _ := newSession(t)
		s.Resume(context.Background())

		st := s.State()
		assert.Equal(t, StatusUnauthenticated, st.Status)
		assert.False(t, st.Loading)
		assert.Nil(t, st.User)
	})

	t.Run("existing session pointer", func(t *testing.T) {
		s, repo := newSession(t)
		ctx := context.Background()
		_, err := repo.Register(ctx, "Alice", "a@x.com", "password123")
		require.NoError(t, err)

		s.Resume(ctx)

		st := s.State()
		assert.Equal(t, StatusAuthenticated, st.Status)
		require.NotNil(t, st.User)
		assert.Equal(t, "a@x.com", st.User.Email)
	})
}

func TestSessionService_RegisterAndLogin(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	s.Register(ctx, "Alice", "a@x.com", "password123")
	st := s.State()
	require.Equal(t, StatusAuthenticated, st.Status)
	require.NotNil(t, st.User)
	assert.True(t, st.User.IsOnline())
	assert.Empty(t, st.Err)

	s.Logout(ctx)
	assert.Equal(t, StatusUnauthenticated, s.State().Status)

	s.Login(ctx, "a@x.com", "password123")
	st = s.State()
	assert.Equal(t, StatusAuthenticated, st.Status)
	require.NotNil(t, st.User)
	assert.Equal(t, "a@x.com", st.User.Email)
}

func TestSessionService_FailuresSetGenericError(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	s.Login(ctx, "nobody@x.com", "password123")
	st := s.State()
	assert.Equal(t, "Login failed", st.Err)
	assert.Equal(t, StatusLoading, st.Status, "status must not change on failure")

	s.ClearError()
	assert.Empty(t, s.State().Err)

	s.Register(ctx, "Alice", "a@x.com", "password123")
	require.Equal(t, StatusAuthenticated, s.State().Status)

	s.Register(ctx, "Impostor", "a@x.com", "hunter2")
	st = s.State()
	assert.Equal(t, "Registration failed", st.Err)
	assert.Equal(t, StatusAuthenticated, st.Status)
}

func TestSessionService_SetVisible_Throttled(t *testing.T) {
	s, repo := newSession(t)
	ctx := context.Background()

	s.Register(ctx, "Alice", "a@x.com", "password123")

	// First transition consumes the limiter token and lands.
	s.SetVisible(ctx, false)
	st := s.State()
	require.NotNil(t, st.User)
	assert.False(t, st.User.IsOnline())

	// Immediate second transition is dropped by the throttle.
	s.SetVisible(ctx, true)
	assert.False(t, s.State().User.IsOnline())

	current, err := repo.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.False(t, current.IsOnline())
}

func TestSessionService_SetVisible_AfterThrottleWindow(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	s.Register(ctx, "Alice", "a@x.com", "password123")
	s.SetVisible(ctx, false)

	require.Eventually(t, func() bool {
		s.SetVisible(ctx, true)
		return s.State().User.IsOnline()
	}, 3*time.Second, 100*time.Millisecond)
}

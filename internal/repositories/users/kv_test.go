package users

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *KVRepository {
	t.Helper()
	return NewKVRepository(kvstore.NewMemStore())
}

func TestRegister_SetsSessionPointer(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	user, err := r.Register(ctx, "Alice", "a@x.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	assert.True(t, user.IsOnline())
	require.NotNil(t, user.LastSeen)

	current, err := r.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "a@x.com", current.Email)
	assert.True(t, current.IsOnline())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	first, err := r.Register(ctx, "Alice", "a@x.com", "password123")
	require.NoError(t, err)

	_, err = r.Register(ctx, "Impostor", "a@x.com", "hunter2")
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	// The existing record must be untouched.
	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, first.ID, users[0].ID)
	assert.Equal(t, "Alice", users[0].Name)
}

func TestLogin(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	registered, err := r.Register(ctx, "Alice", "a@x.com", "password123")
	require.NoError(t, err)
	require.NoError(t, r.Logout(ctx))

	t.Run("success refreshes presence", func(t *testing.T) {
		before := *registered.LastSeen
		time.Sleep(5 * time.Millisecond)

		user, err := r.Login(ctx, "a@x.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.True(t, user.IsOnline())
		assert.False(t, user.LastSeen.Before(before))

		current, err := r.CurrentUser(ctx)
		require.NoError(t, err)
		require.NotNil(t, current)
		assert.Equal(t, registered.ID, current.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := r.Login(ctx, "a@x.com", "wrong")
		require.ErrorIs(t, err, common.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := r.Login(ctx, "nobody@x.com", "password123")
		require.ErrorIs(t, err, common.ErrUserNotFound)
	})
}

func TestLogout_KeepsOnlineFlag(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	user, err := r.Register(ctx, "Alice", "a@x.com", "password123")
	require.NoError(t, err)

	require.NoError(t, r.Logout(ctx))

	current, err := r.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	// Logout only clears the session pointer; directory record stays online.
	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, user.ID, users[0].ID)
	assert.True(t, users[0].IsOnline())
}

func TestUpdatePresence(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	user, err := r.Register(ctx, "Alice", "a@x.com", "password123")
	require.NoError(t, err)

	updated, err := r.UpdatePresence(ctx, user, false)
	require.NoError(t, err)
	assert.False(t, updated.IsOnline())

	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.False(t, users[0].IsOnline())

	current, err := r.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.False(t, current.IsOnline())
}

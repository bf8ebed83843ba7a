package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestEkvStore_SetGetRemove(t *testing.T) {
	s := NewMemStore()

	err := s.Set("rec", record{Name: "alice", Count: 3})
	require.NoError(t, err)

	var got record
	ok, err := s.Get("rec", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, record{Name: "alice", Count: 3}, got)

	require.NoError(t, s.Remove("rec"))

	var after record
	ok, err = s.Get("rec", &after)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEkvStore_Get_MissingKey(t *testing.T) {
	s := NewMemStore()

	var got record
	ok, err := s.Get("nothing-here", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestEkvStore_Set_Overwrites(t *testing.T) {
	s := NewMemStore()

	require.NoError(t, s.Set("rec", record{Name: "first"}))
	require.NoError(t, s.Set("rec", record{Name: "second"}))

	var got record
	ok, err := s.Get("rec", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", got.Name)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileStore(dir, "test-password")
	require.NoError(t, err)
	require.NoError(t, s.Set("rec", record{Name: "durable", Count: 1}))

	reopened, err := NewFileStore(dir, "test-password")
	require.NoError(t, err)

	var got record
	ok, err := reopened.Get("rec", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "durable", got.Name)
}

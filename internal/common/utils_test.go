package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	s1, err := MakeRandHexString(16)
	require.NoError(t, err)
	s2, err := MakeRandHexString(16)
	require.NoError(t, err)

	assert.Len(t, s1, 32)
	assert.Len(t, s2, 32)
	assert.NotEqual(t, s1, s2)
}

func TestWipeByteArray(t *testing.T) {
	b := []byte("password123")
	WipeByteArray(b)
	for i := range b {
		assert.Zero(t, b[i])
	}

	// nil must not panic
	WipeByteArray(nil)
}

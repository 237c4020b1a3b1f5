package lock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireReleaseRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo.lock")

	l, err := Acquire(path)
	require.NoError(t, err)
	assert.NotEmpty(t, l.Token())

	require.NoError(t, l.Release())
}

func TestAcquireFailsWhenAlreadyHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo.lock")

	l, err := Acquire(path)
	require.NoError(t, err)
	defer l.Release()

	_, err = Acquire(path)
	assert.Error(t, err)
}

func TestReleaseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo.lock")
	l, err := Acquire(path)
	require.NoError(t, err)

	require.NoError(t, l.Release())
	require.NoError(t, l.Release())
}

func TestReleaseOnNilLockIsNoOp(t *testing.T) {
	var l *Lock
	assert.NoError(t, l.Release())
	assert.Equal(t, "", l.Token())
}

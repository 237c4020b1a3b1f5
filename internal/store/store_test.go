package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlet/internal/objecthash"
	"gitlet/internal/objects"
	"gitlet/internal/vcserr"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), objecthash.Sum, nil, nil)
	require.NoError(t, err)
	return s
}

func TestPutBlobIsContentAddressedAndIdempotent(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.PutBlob([]byte("hello"))
	require.NoError(t, err)
	id2, err := s.PutBlob([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	got, err := s.LoadBlob(id1)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestLoadBlobMissingIsPlainError(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LoadBlob(objecthash.Sum([]byte("never written")))
	require.Error(t, err)
	_, isVcsErr := err.(*vcserr.Error)
	assert.False(t, isVcsErr, "a missing blob is store corruption, not a recognized user error")
}

func TestPutCommitRoundTrip(t *testing.T) {
	s := newTestStore(t)
	c := &objects.Commit{
		Author: "gitlet", Timestamp: "now", Message: "hi",
		Parents: []string{objects.NoParent},
		Tree:    map[string]string{"f.txt": "deadbeef"},
	}
	id, err := s.PutCommit(c)
	require.NoError(t, err)

	loaded, err := s.LoadCommit(id)
	require.NoError(t, err)
	assert.Equal(t, c.Author, loaded.Author)
	assert.Equal(t, c.Message, loaded.Message)
	assert.Equal(t, c.Tree, loaded.Tree)
}

func TestPutCommitIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	c := &objects.Commit{Author: "a", Timestamp: "t", Message: "m", Parents: []string{objects.NoParent}, Tree: map[string]string{}}
	id1, err := s.PutCommit(c)
	require.NoError(t, err)
	id2, err := s.PutCommit(c)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestResolvePrefixExactAndPartial(t *testing.T) {
	s := newTestStore(t)
	id, err := s.PutBlob([]byte("unique content for prefix test"))
	require.NoError(t, err)

	full, err := s.ResolvePrefix(id)
	require.NoError(t, err)
	assert.Equal(t, id, full)

	short, err := s.ResolvePrefix(id[:8])
	require.NoError(t, err)
	assert.Equal(t, id, short)
}

func TestResolvePrefixRejectsTooShort(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ResolvePrefix("abcd")
	assert.Error(t, err)
}

func TestResolvePrefixUnknownFails(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ResolvePrefix("0123456789abcdef0123456789abcdef01234567")
	assert.Error(t, err)
}

func TestCompressionRoundTripsSmallAndLargePayloads(t *testing.T) {
	c := newCompressor()
	small := []byte("short")
	large := make([]byte, 4096)
	for i := range large {
		large[i] = byte(i % 251)
	}

	for _, raw := range [][]byte{small, large} {
		encoded, err := c.compress(raw)
		require.NoError(t, err)
		decoded, err := c.decompress(encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, decoded)
	}
}

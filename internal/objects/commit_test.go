package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlet/internal/objecthash"
)

func TestInitialCommitShape(t *testing.T) {
	c := Initial("gitlet", "epoch")
	assert.Equal(t, []string{NoParent}, c.Parents)
	assert.Equal(t, "initial commit", c.Message)
	assert.Empty(t, c.Tree)
	assert.Equal(t, NoParent, c.FirstParent())
	assert.Equal(t, NoParent, c.SecondParent())
	assert.False(t, c.IsMerge())
}

func TestSerializeIsDeterministicAcrossTreeOrder(t *testing.T) {
	c1 := &Commit{
		Author: "a", Timestamp: "t", Message: "m",
		Parents: []string{NoParent},
		Tree:    map[string]string{"b.txt": "id-b", "a.txt": "id-a"},
	}
	c2 := &Commit{
		Author: "a", Timestamp: "t", Message: "m",
		Parents: []string{NoParent},
		Tree:    map[string]string{"a.txt": "id-a", "b.txt": "id-b"},
	}
	assert.Equal(t, c1.Serialize(), c2.Serialize())
	assert.Equal(t, c1.ID(objecthash.Sum), c2.ID(objecthash.Sum))
}

func TestSerializeDiffersOnMessage(t *testing.T) {
	c1 := &Commit{Author: "a", Timestamp: "t", Message: "one", Parents: []string{NoParent}, Tree: map[string]string{}}
	c2 := &Commit{Author: "a", Timestamp: "t", Message: "two", Parents: []string{NoParent}, Tree: map[string]string{}}
	assert.NotEqual(t, c1.ID(objecthash.Sum), c2.ID(objecthash.Sum))
}

func TestMergeCommitParents(t *testing.T) {
	c := &Commit{Parents: []string{"p1", "p2"}}
	require.True(t, c.IsMerge())
	assert.Equal(t, "p1", c.FirstParent())
	assert.Equal(t, "p2", c.SecondParent())
}

func TestFileBlobID(t *testing.T) {
	c := &Commit{Tree: map[string]string{"f.txt": "blob1"}}
	id, ok := c.FileBlobID("f.txt")
	assert.True(t, ok)
	assert.Equal(t, "blob1", id)

	_, ok = c.FileBlobID("missing.txt")
	assert.False(t, ok)
}

func TestBlobID(t *testing.T) {
	id1 := BlobID(objecthash.Sum, []byte("hello"))
	id2 := BlobID(objecthash.Sum, []byte("hello"))
	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, BlobID(objecthash.Sum, []byte("world")))
}

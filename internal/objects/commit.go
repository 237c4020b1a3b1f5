// Package objects holds the two value types the store persists: Blob and
// Commit. Both are immutable once written and both derive their identity
// from a content digest rather than from any mutable field.
package objects

import (
	"bytes"
	"fmt"
	"sort"

	"gitlet/internal/objecthash"
)

// NoParent is the sentinel parent id carried by the initial commit. It is
// never a real object id, so it can never collide with one.
const NoParent = "none"

// Commit is an immutable snapshot node in the history DAG.
type Commit struct {
	Author    string            `json:"author"`
	Timestamp string            `json:"timestamp"`
	Message   string            `json:"message"`
	Parents   []string          `json:"parents"`
	Tree      map[string]string `json:"tree"` // filename -> blob id
}

// IsMerge reports whether this commit records two parents.
func (c *Commit) IsMerge() bool { return len(c.Parents) == 2 }

// FirstParent returns the commit's primary parent id, or NoParent for the
// initial commit.
func (c *Commit) FirstParent() string {
	if len(c.Parents) == 0 {
		return NoParent
	}
	return c.Parents[0]
}

// SecondParent returns the merge parent id, or NoParent for a non-merge
// commit.
func (c *Commit) SecondParent() string {
	if len(c.Parents) < 2 {
		return NoParent
	}
	return c.Parents[1]
}

// Serialize renders the commit in its canonical form: fields in a fixed
// order, parents joined literally (including the "none" sentinel), and
// the tree emitted with filenames sorted so that two commits with
// identical fields always serialize to the same bytes and therefore
// share one id.
func (c *Commit) Serialize() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "author %s\n", c.Author)
	fmt.Fprintf(&buf, "timestamp %s\n", c.Timestamp)
	fmt.Fprintf(&buf, "message %s\n", c.Message)
	fmt.Fprintf(&buf, "parents %d\n", len(c.Parents))
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	names := make([]string, 0, len(c.Tree))
	for name := range c.Tree {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(&buf, "tree %d\n", len(names))
	for _, name := range names {
		fmt.Fprintf(&buf, "file %s %s\n", name, c.Tree[name])
	}
	return buf.Bytes()
}

// ID computes the commit's content-addressed id under the given digest
// function.
func (c *Commit) ID(digest objecthash.Func) string {
	return digest(c.Serialize())
}

// FileBlobID returns the blob id recorded for name, and whether an entry
// exists at all.
func (c *Commit) FileBlobID(name string) (string, bool) {
	id, ok := c.Tree[name]
	return id, ok
}

// Initial builds the commit every repository starts from: parent list
// [none], empty tree, the fixed message, and the caller-supplied
// epoch-formatted timestamp.
func Initial(author, timestamp string) *Commit {
	return &Commit{
		Author:    author,
		Timestamp: timestamp,
		Message:   "initial commit",
		Parents:   []string{NoParent},
		Tree:      map[string]string{},
	}
}

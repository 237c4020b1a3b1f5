// Package objecthash derives content-addressed identifiers and their
// on-disk fanout path, the way the object store keys blobs and commits.
package objecthash

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// Len is the length, in hex characters, of every object id this package
// produces.
const Len = 40

// Func computes the 40-hex-character id for a byte sequence. The store
// depends only on this signature, not on sha1 specifically, so tests can
// inject a deterministic stand-in.
type Func func(data []byte) string

// Sum is the default Func: a 160-bit SHA-1 digest rendered as lowercase hex.
func Sum(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Split breaks an id into the two-level fanout used under <root>/objects:
// the first two characters name the folder, the remaining 38 name the file.
func Split(id string) (folder, file string, err error) {
	if len(id) != Len {
		return "", "", fmt.Errorf("objecthash: id %q is not %d hex characters", id, Len)
	}
	return id[:2], id[2:], nil
}

package objects

import "gitlet/internal/objecthash"

// Blob is the opaque byte content of one file version. Two blobs with
// identical bytes are the same blob: identity is the digest, not any
// wrapper struct, so BlobID is a plain function rather than a method on
// a type that would tempt callers into comparing pointers.

// BlobID computes the content-addressed id for file bytes.
func BlobID(digest objecthash.Func, content []byte) string {
	return digest(content)
}

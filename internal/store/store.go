// Package store persists blobs and commits in the content-addressed
// object store: a two-level fanout directory under <root>/objects, an
// in-memory LRU of recently touched objects, and transparent on-disk
// compression of the bytes a digest was never computed over.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"gitlet/internal/index"
	"gitlet/internal/logging"
	"gitlet/internal/objecthash"
	"gitlet/internal/objects"
	"gitlet/internal/vcserr"
)

const cacheSize = 256

// Store is the authoritative object store. Its directory layout is the
// persistence format: any reader that understands the fanout scheme can
// load objects without going through this type, so the cache and index
// fields are accelerators, never sources of truth.
type Store struct {
	root   string // <repo root>/objects
	digest objecthash.Func
	cache  *lru.Cache[string, []byte]
	index  *index.Index // optional; nil-safe
	comp   *compressor
	log    *logging.Logger
}

// Open prepares the object store rooted at dir, creating it if absent.
// idx may be nil: the store degrades to directory scans for partial-id
// resolution when no index is wired in.
func Open(dir string, digest objecthash.Func, idx *index.Index, log *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating object store at %s: %w", dir, err)
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("allocating object cache: %w", err)
	}
	return &Store{
		root:   dir,
		digest: digest,
		cache:  cache,
		index:  idx,
		comp:   newCompressor(),
		log:    log,
	}, nil
}

func (s *Store) path(id string) (string, error) {
	folder, file, err := objecthash.Split(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, folder, file), nil
}

// has reports whether an object with the given id is already on disk,
// letting writers skip re-encoding content they've already stored.
func (s *Store) has(id string) bool {
	p, err := s.path(id)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// write persists raw bytes under id if no object with that id already
// exists. Content-addressing makes every write idempotent: two writers
// computing the same id always agree on the bytes, so a second write is
// always a safe no-op rather than a conflict.
func (s *Store) write(id string, raw []byte) error {
	if s.has(id) {
		return nil
	}
	p, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating object folder: %w", err)
	}
	encoded, err := s.comp.compress(raw)
	if err != nil {
		return fmt.Errorf("compressing object %s: %w", id, err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o644); err != nil {
		return fmt.Errorf("writing object %s: %w", id, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("finalizing object %s: %w", id, err)
	}
	s.cache.Add(id, raw)
	if s.index != nil {
		if err := s.index.RecordID(id); err != nil && s.log != nil {
			s.log.Warn("failed to record object in index", zap.String("id", id), zap.Error(err))
		}
	}
	return nil
}

// read loads the raw, decompressed bytes for id, consulting the cache
// first.
func (s *Store) read(id string) ([]byte, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached, nil
	}
	p, err := s.path(id)
	if err != nil {
		return nil, err
	}
	encoded, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, os.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", id, err)
	}
	raw, err := s.comp.decompress(encoded)
	if err != nil {
		return nil, fmt.Errorf("decompressing object %s: %w", id, err)
	}
	s.cache.Add(id, raw)
	return raw, nil
}

// PutBlob stores file content and returns its object id. The id is the
// digest of content exactly as given; compression is an on-disk detail
// and never touches the bytes identity is computed from.
func (s *Store) PutBlob(content []byte) (string, error) {
	id := objects.BlobID(s.digest, content)
	if err := s.write(id, content); err != nil {
		return "", err
	}
	return id, nil
}

// LoadBlob returns the content previously stored under id. A missing
// blob is a store-corruption condition, not one of the spec's
// recognized user errors, so it propagates as a plain error rather
// than a vcserr.Error.
func (s *Store) LoadBlob(id string) ([]byte, error) {
	raw, err := s.read(id)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("blob %s referenced but missing from object store", id)
	}
	return raw, err
}

// commitRecord is the on-disk encoding of a commit. It is deliberately
// distinct from Commit.Serialize: Serialize defines the canonical bytes
// an id is computed from, while this JSON form is what actually gets
// written to disk, so that a commit message containing characters the
// canonical line format can't safely round-trip never corrupts storage.
type commitRecord struct {
	Author    string            `json:"author"`
	Timestamp string            `json:"timestamp"`
	Message   string            `json:"message"`
	Parents   []string          `json:"parents"`
	Tree      map[string]string `json:"tree"`
}

// PutCommit stores a commit and returns its object id.
func (s *Store) PutCommit(c *objects.Commit) (string, error) {
	id := c.ID(s.digest)
	rec := commitRecord{
		Author:    c.Author,
		Timestamp: c.Timestamp,
		Message:   c.Message,
		Parents:   c.Parents,
		Tree:      c.Tree,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encoding commit: %w", err)
	}
	if err := s.write(id, raw); err != nil {
		return "", err
	}
	return id, nil
}

// LoadCommit returns the commit previously stored under id.
func (s *Store) LoadCommit(id string) (*objects.Commit, error) {
	raw, err := s.read(id)
	if errors.Is(err, os.ErrNotExist) {
		return nil, vcserr.ErrNoCommitWithID
	}
	if err != nil {
		return nil, err
	}
	var rec commitRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decoding commit %s: %w", id, err)
	}
	return &objects.Commit{
		Author:    rec.Author,
		Timestamp: rec.Timestamp,
		Message:   rec.Message,
		Parents:   rec.Parents,
		Tree:      rec.Tree,
	}, nil
}

// ResolvePrefix expands a partial object id to the one full id it
// names. An exact-length id is returned unchanged without a lookup.
// Prefixes shorter than six characters are rejected as too likely to be
// ambiguous to be useful; ResolvePrefix still reports genuine ambiguity
// at any length, since a short repository history can collide even a
// six-character prefix.
func (s *Store) ResolvePrefix(prefix string) (string, error) {
	if len(prefix) == objecthash.Len {
		if !s.has(prefix) {
			return "", vcserr.ErrNoCommitWithID
		}
		return prefix, nil
	}
	if len(prefix) < 6 {
		return "", vcserr.ErrNoCommitWithID
	}

	if s.index != nil {
		matches, err := s.index.LookupPrefix(prefix)
		if err == nil && len(matches) > 0 {
			return uniqueMatch(matches)
		}
	}
	return s.scanPrefix(prefix)
}

// scanPrefix walks the fanout directory for prefix directly, the
// fallback path when the index has nothing cached (a fresh checkout of
// the objects directory, or one built by another implementation).
func (s *Store) scanPrefix(prefix string) (string, error) {
	folder := prefix[:2]
	rest := prefix[2:]
	dir := filepath.Join(s.root, folder)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return "", vcserr.ErrNoCommitWithID
	}
	if err != nil {
		return "", fmt.Errorf("scanning object folder %s: %w", dir, err)
	}

	var matches []string
	for _, e := range entries {
		name := e.Name()
		if len(name) >= len(rest) && name[:len(rest)] == rest {
			matches = append(matches, folder+name)
		}
	}
	return uniqueMatch(matches)
}

func uniqueMatch(matches []string) (string, error) {
	sort.Strings(matches)
	switch len(matches) {
	case 0:
		return "", vcserr.ErrNoCommitWithID
	case 1:
		return matches[0], nil
	default:
		return "", &vcserr.Error{Kind: vcserr.KindPrecondition, Message: "Ambiguous commit id prefix."}
	}
}

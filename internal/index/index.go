// Package index maintains fast, rebuildable caches over repository data
// that the object store and merge engine would otherwise have to
// recompute from scratch: a reverse lookup from id prefix to full id, and
// a memo of split-point (lowest common ancestor) results keyed by branch
// head pair. Nothing here is authoritative — the object store's on-disk
// fanout layout and the DAG walk in package dag always remain the source
// of truth, and every lookup here degrades to "not found" rather than to
// a wrong answer when the index is empty or missing.
package index

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const (
	objPrefix = "obj:"
	lcaPrefix = "lca:"
)

// Index wraps a BadgerDB used purely as a local cache; it is opened over
// a directory under the persistence root and never holds data that
// cannot be regenerated from the object store.
type Index struct {
	db *badger.DB
}

// Open opens (creating if absent) the badger-backed cache rooted at dir.
func Open(dir string) (*Index, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening object index: %w", err)
	}
	return &Index{db: db}, nil
}

// Close releases the underlying database handle.
func (ix *Index) Close() error {
	if ix == nil || ix.db == nil {
		return nil
	}
	return ix.db.Close()
}

// RecordID registers a full object id so future prefix lookups can find
// it without a directory scan.
func (ix *Index) RecordID(id string) error {
	return ix.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(objPrefix+id), nil)
	})
}

// LookupPrefix returns every recorded id beginning with prefix. An empty
// result is not an error: it means the index has nothing cached, and the
// caller should fall back to scanning the object store directly.
func (ix *Index) LookupPrefix(prefix string) ([]string, error) {
	var matches []string
	err := ix.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(objPrefix + prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			matches = append(matches, strings.TrimPrefix(key, objPrefix))
		}
		return nil
	})
	return matches, err
}

// lcaKey builds a direction-sensitive key for a pair of commit ids.
// SplitPoint is only commutative when the DAG has a unique lowest
// common ancestor; on a tie its insertion-order tie-break favors
// whichever id was passed as the first argument. Sorting the pair here
// would make merging A into B and, later, B into A share one cache
// entry and silently reuse the wrong-direction tie-break result, so
// headA and headB are kept in call order instead.
func lcaKey(a, b string) []byte {
	return []byte(lcaPrefix + a + ":" + b)
}

// RecordSplitPoint memoizes the result of a lowest-common-ancestor
// computation for a branch head pair.
func (ix *Index) RecordSplitPoint(headA, headB, splitPoint string) error {
	return ix.db.Update(func(txn *badger.Txn) error {
		return txn.Set(lcaKey(headA, headB), []byte(splitPoint))
	})
}

// LookupSplitPoint returns a previously memoized split point, if any.
func (ix *Index) LookupSplitPoint(headA, headB string) (string, bool, error) {
	var result string
	found := false
	err := ix.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(lcaKey(headA, headB))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			result = string(val)
			return nil
		})
	})
	return result, found, err
}


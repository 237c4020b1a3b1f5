// Package lock implements the advisory single-writer lock the spec
// permits but does not require: a lock file under the persistence root
// that a second concurrent invocation refuses to cross, tagged with a
// uuid so a stale lock left by a crashed process is identifiable in
// logs.
package lock

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Lock is a held advisory lock. The zero value is not usable; obtain
// one through Acquire.
type Lock struct {
	path  string
	token string
}

// Acquire creates the lock file at path, failing if one already exists.
// The caller owns the returned Lock until Release is called.
func Acquire(path string) (*Lock, error) {
	token := uuid.NewString()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("repository is locked by another process (lock file %s exists)", path)
		}
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(token); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing lock token: %w", err)
	}
	return &Lock{path: path, token: token}, nil
}

// Release removes the lock file. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("releasing lock: %w", err)
	}
	return nil
}

// Token returns the uuid this lock was tagged with, mostly for log
// correlation.
func (l *Lock) Token() string {
	if l == nil {
		return ""
	}
	return l.token
}

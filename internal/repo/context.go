// Package repo implements the repository aggregate: HEAD, branches, the
// staging area, and every command that mutates or reads them. It is the
// one place the object store, the DAG walk, the working tree, and the
// advisory lock all come together.
package repo

import (
	"path/filepath"

	"go.uber.org/zap"

	"gitlet/internal/clock"
	"gitlet/internal/config"
	"gitlet/internal/index"
	"gitlet/internal/lock"
	"gitlet/internal/logging"
	"gitlet/internal/objecthash"
	"gitlet/internal/store"
	"gitlet/internal/workspace"
)

// RootDirName is the persistence root's name, always resolved relative
// to the working directory a command is invoked from.
const RootDirName = ".gitlet"

// StateFileName is the plain file at the persistence root holding the
// serialized repository state. It lives beside, not inside, objects/.
const StateFileName = "repo"

const (
	configFileName = "config.json"
	indexDirName   = "index"
	lockFileName   = "repo.lock"
)

// Context threads the externally supplied collaborators the spec
// requires — a digest function, a filesystem, a clock — through every
// operation, in place of the process-global CWD the original system
// used. A Context is cheap to build and holds no open resources itself;
// Init/Load open what they need and Repository.Close releases it.
type Context struct {
	WorkDir string
	Digest  objecthash.Func
	Clock   clock.Clock
	Logger  *logging.Logger
	UseLock bool
}

// NewContext builds a Context rooted at workDir.
func NewContext(workDir string, digest objecthash.Func, clk clock.Clock, log *logging.Logger) *Context {
	return &Context{
		WorkDir: workDir,
		Digest:  digest,
		Clock:   clk,
		Logger:  log,
		UseLock: true,
	}
}

func (c *Context) rootDir() string   { return filepath.Join(c.WorkDir, RootDirName) }
func (c *Context) statePath() string { return filepath.Join(c.rootDir(), StateFileName) }
func (c *Context) objectsDir() string {
	return filepath.Join(c.rootDir(), "objects")
}
func (c *Context) configPath() string { return filepath.Join(c.rootDir(), configFileName) }
func (c *Context) indexDir() string   { return filepath.Join(c.rootDir(), indexDirName) }
func (c *Context) lockPath() string   { return filepath.Join(c.rootDir(), lockFileName) }

// openCollaborators wires the object store, auxiliary index, working
// tree, and (optionally) the advisory lock for an already-existing
// persistence root. Callers must release what it opened (via
// Repository.Close) once done.
func (c *Context) openCollaborators() (*store.Store, *index.Index, *workspace.Workspace, *lock.Lock, error) {
	var lk *lock.Lock
	if c.UseLock {
		l, err := lock.Acquire(c.lockPath())
		if err != nil {
			return nil, nil, nil, nil, err
		}
		lk = l
	}

	idx, err := index.Open(c.indexDir())
	if err != nil {
		lk.Release()
		return nil, nil, nil, lk, err
	}

	st, err := store.Open(c.objectsDir(), c.Digest, idx, c.Logger)
	if err != nil {
		idx.Close()
		lk.Release()
		return nil, nil, nil, lk, err
	}

	ws := workspace.New(c.WorkDir, RootDirName)
	return st, idx, ws, lk, nil
}

func (c *Context) logField() zap.Field {
	return zap.String("root", c.rootDir())
}

// loadConfig reads the repository config, falling back to defaults if
// the file is somehow missing (it is written unconditionally by init).
func (c *Context) loadConfig() config.Config {
	cfg, err := config.Load(c.configPath())
	if err != nil {
		return config.Default()
	}
	return cfg
}

func formatClock(c *Context) string {
	return clock.Format(c.Clock.Now())
}

package repo

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"gitlet/internal/clock"
	"gitlet/internal/config"
	"gitlet/internal/index"
	"gitlet/internal/lock"
	"gitlet/internal/objecthash"
	"gitlet/internal/objects"
	"gitlet/internal/store"
	"gitlet/internal/vcserr"
	"gitlet/internal/workspace"
)

// State is the single mutable aggregate persisted as the repo blob. Its
// field order and json tags are the on-disk format: anything that
// reads an existing <root>/repo file must agree with this shape.
type State struct {
	Heads       map[string]string `json:"heads"`
	SplitPoints map[string]string `json:"split_points"`
	HeadPointer string            `json:"head_pointer"`
	OnBranch    string            `json:"on_branch"`
	StagingAdd  map[string]string `json:"staging_add"`
	StagingRm   map[string]bool   `json:"staging_rm"`
	AllCommits  []string          `json:"all_commits"`
	Author      string            `json:"author"`
}

func newState(author string) State {
	return State{
		Heads:       map[string]string{},
		SplitPoints: map[string]string{},
		StagingAdd:  map[string]string{},
		StagingRm:   map[string]bool{},
		AllCommits:  nil,
		Author:      author,
	}
}

// Repository is the live aggregate: the persisted State plus the
// collaborators it was opened with. Every command operates on a
// Repository and calls Save before returning success.
type Repository struct {
	State

	ctx   *Context
	store *store.Store
	index *index.Index
	ws    *workspace.Workspace
	lock  *lock.Lock
	cfg   config.Config
}

// Digest exposes the injected digest function to callers outside this
// package that need to compute ids without going through the store.
func (r *Repository) Digest() objecthash.Func { return r.ctx.Digest }

// Store exposes the object store for read-only access by callers outside
// this package that need to load objects directly (the CLI's diff
// command loads blobs through it) without adding a method to
// Repository for every lookup.
func (r *Repository) Store() *store.Store { return r.store }

// Workspace exposes the working tree for CLI-level diagnostics.
func (r *Repository) Workspace() *workspace.Workspace { return r.ws }

// HeadCommit loads the commit at head_pointer.
func (r *Repository) HeadCommit() (*objects.Commit, error) {
	return r.store.LoadCommit(r.HeadPointer)
}

// Init creates a fresh persistence root under ctx.WorkDir: the objects
// directory, the initial commit, and the repo blob with a single
// master branch pointing at it.
func Init(ctx *Context) (*Repository, error) {
	if _, err := os.Stat(ctx.rootDir()); err == nil {
		return nil, vcserr.ErrAlreadyInitialized
	}
	if err := os.MkdirAll(ctx.objectsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating persistence root: %w", err)
	}

	cfg := config.Default()
	if err := config.Save(ctx.configPath(), cfg); err != nil {
		return nil, err
	}

	st, idx, ws, lk, err := ctx.openCollaborators()
	if err != nil {
		return nil, err
	}

	timestamp := clock.Format(clock.Epoch())
	initial := objects.Initial(cfg.Author, timestamp)
	initialID, err := st.PutCommit(initial)
	if err != nil {
		return nil, err
	}

	state := newState(cfg.Author)
	state.Heads["master"] = initialID
	state.SplitPoints["master"] = initialID
	state.HeadPointer = initialID
	state.OnBranch = "master"
	state.AllCommits = []string{initialID}

	r := &Repository{State: state, ctx: ctx, store: st, index: idx, ws: ws, lock: lk, cfg: cfg}
	if err := r.Save(); err != nil {
		return nil, err
	}
	if ctx.Logger != nil {
		ctx.Logger.Info("initialized repository", ctx.logField(), zap.String("initial_commit", initialID))
	}
	return r, nil
}

// Load opens an existing persistence root under ctx.WorkDir.
func Load(ctx *Context) (*Repository, error) {
	if _, err := os.Stat(ctx.statePath()); err != nil {
		return nil, vcserr.ErrNotInitialized
	}

	cfg := ctx.loadConfig()
	if !cfg.Lock {
		ctx.UseLock = false
	}
	st, idx, ws, lk, err := ctx.openCollaborators()
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(ctx.statePath())
	if err != nil {
		return nil, fmt.Errorf("reading repository state: %w", err)
	}
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("parsing repository state: %w", err)
	}
	if state.StagingAdd == nil {
		state.StagingAdd = map[string]string{}
	}
	if state.StagingRm == nil {
		state.StagingRm = map[string]bool{}
	}

	return &Repository{State: state, ctx: ctx, store: st, index: idx, ws: ws, lock: lk, cfg: cfg}, nil
}

// Save rewrites the repo blob as a whole, via rename-over-temp so a
// crash mid-write never leaves a truncated file in place.
func (r *Repository) Save() error {
	if r.HeadPointer != r.Heads[r.OnBranch] {
		return fmt.Errorf("repo: invariant violation: head_pointer %s does not match heads[%s]=%s",
			r.HeadPointer, r.OnBranch, r.Heads[r.OnBranch])
	}
	data, err := json.MarshalIndent(r.State, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding repository state: %w", err)
	}
	tmp := r.ctx.statePath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing repository state: %w", err)
	}
	if err := os.Rename(tmp, r.ctx.statePath()); err != nil {
		return fmt.Errorf("finalizing repository state: %w", err)
	}
	return nil
}

// Close releases the advisory lock and the auxiliary index. It does
// not persist state; callers must call Save before Close whenever the
// command they're running mutated the repository.
func (r *Repository) Close() error {
	var firstErr error
	if err := r.index.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := r.lock.Release(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

package repo

import (
	"gitlet/internal/objects"
	"gitlet/internal/vcserr"
)

// Commit creates a normal (single-parent) commit from the current
// staging area and clears it. An empty message is rejected here as
// well as at the CLI boundary, since Repository is also the surface
// tests drive directly.
func (r *Repository) Commit(message string) (string, error) {
	if message == "" {
		return "", vcserr.ErrEmptyCommitMessage
	}
	if len(r.StagingAdd) == 0 && len(r.StagingRm) == 0 {
		return "", vcserr.ErrNoChangesToCommit
	}
	return r.commit(message, []string{r.HeadPointer})
}

// commit builds and persists a commit with the given parent list from
// the current tree plus staging, shared by Commit and the merge
// engine's final commit step.
func (r *Repository) commit(message string, parents []string) (string, error) {
	head, err := r.HeadCommit()
	if err != nil {
		return "", err
	}

	tree := make(map[string]string, len(head.Tree)+len(r.StagingAdd))
	for name, id := range head.Tree {
		tree[name] = id
	}
	for name, id := range r.StagingAdd {
		tree[name] = id
	}
	for name := range r.StagingRm {
		delete(tree, name)
	}

	c := &objects.Commit{
		Author:    r.Author,
		Timestamp: timestampNow(r),
		Message:   message,
		Parents:   parents,
		Tree:      tree,
	}
	id, err := r.store.PutCommit(c)
	if err != nil {
		return "", err
	}

	r.Heads[r.OnBranch] = id
	r.HeadPointer = id
	r.StagingAdd = map[string]string{}
	r.StagingRm = map[string]bool{}
	r.AllCommits = append([]string{id}, r.AllCommits...)
	return id, nil
}

func timestampNow(r *Repository) string {
	return formatClock(r.ctx)
}

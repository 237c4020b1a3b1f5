package repo

import "gitlet/internal/vcserr"

// Branch creates a new branch named name pointing at the current head.
func (r *Repository) Branch(name string) error {
	if _, exists := r.Heads[name]; exists {
		return vcserr.ErrBranchAlreadyExists
	}
	r.Heads[name] = r.HeadPointer
	r.SplitPoints[name] = r.HeadPointer
	return nil
}

// RmBranch deletes a branch pointer. It never touches the branch's
// commits: nothing in this system ever deletes an object.
func (r *Repository) RmBranch(name string) error {
	if name == r.OnBranch {
		return vcserr.ErrCannotRemoveCurrentBranch
	}
	if _, exists := r.Heads[name]; !exists {
		return vcserr.ErrNoSuchBranchToRemove
	}
	delete(r.Heads, name)
	delete(r.SplitPoints, name)
	return nil
}

// SetAuthor changes the default author used by future commits. Unlike
// the system this one is modeled on, this always succeeds silently —
// the original's author command fell through into "no command with
// that name exists" after making the change, which the distilled spec
// calls out as a defect rather than a behavior to preserve.
func (r *Repository) SetAuthor(name string) error {
	r.Author = name
	return nil
}

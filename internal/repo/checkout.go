package repo

import (
	"gitlet/internal/objects"
	"gitlet/internal/vcserr"
)

// CheckoutFileAtHead restores filename from the current head commit's
// tree. It never touches staging or HEAD.
func (r *Repository) CheckoutFileAtHead(filename string) error {
	head, err := r.HeadCommit()
	if err != nil {
		return err
	}
	return r.checkoutFileFromTree(head.Tree, filename)
}

// CheckoutFileAtCommit restores filename from the tree of the commit
// resolve_partial finds. It never touches staging or HEAD.
func (r *Repository) CheckoutFileAtCommit(partialID, filename string) error {
	fullID, err := r.store.ResolvePrefix(partialID)
	if err != nil {
		return err
	}
	c, err := r.store.LoadCommit(fullID)
	if err != nil {
		return err
	}
	return r.checkoutFileFromTree(c.Tree, filename)
}

func (r *Repository) checkoutFileFromTree(tree map[string]string, filename string) error {
	blobID, ok := tree[filename]
	if !ok {
		return vcserr.ErrFileNotInCommit
	}
	content, err := r.store.LoadBlob(blobID)
	if err != nil {
		return err
	}
	return r.ws.WriteFile(filename, content)
}

// CheckoutBranch switches HEAD to branch's tip, reconciling the working
// tree against it and clearing staging.
func (r *Repository) CheckoutBranch(branch string) error {
	if branch == r.OnBranch {
		return vcserr.ErrAlreadyOnBranch
	}
	target, ok := r.Heads[branch]
	if !ok {
		return vcserr.ErrNoSuchBranch
	}
	if err := r.reconcile(target); err != nil {
		return err
	}
	r.OnBranch = branch
	return nil
}

// Reset moves the current branch to the given commit, reconciling the
// working tree against it.
func (r *Repository) Reset(partialID string) (string, error) {
	fullID, err := r.store.ResolvePrefix(partialID)
	if err != nil {
		return "", err
	}
	if _, err := r.store.LoadCommit(fullID); err != nil {
		return "", err
	}
	if err := r.reconcile(fullID); err != nil {
		return "", err
	}
	r.Heads[r.OnBranch] = fullID
	return fullID, nil
}

// reconcile is the working-tree reconciliation shared by CheckoutBranch,
// Reset, and a fast-forward merge: it gates on untracked files, deletes
// what the target no longer has, writes what the target adds or
// changes, and lands HEAD on the target, clearing staging. Callers that
// need to move a branch pointer do so themselves, before or after,
// since reconcile only ever touches head_pointer.
func (r *Repository) reconcile(targetID string) error {
	current, err := r.HeadCommit()
	if err != nil {
		return err
	}
	target, err := r.store.LoadCommit(targetID)
	if err != nil {
		return err
	}

	if err := r.untrackedSafetyGate(current, target.Tree); err != nil {
		return err
	}

	for name := range current.Tree {
		if _, stillPresent := target.Tree[name]; !stillPresent {
			if err := r.ws.DeleteFile(name); err != nil {
				return err
			}
		}
	}
	for name, blobID := range target.Tree {
		content, err := r.store.LoadBlob(blobID)
		if err != nil {
			return err
		}
		if err := r.ws.WriteFile(name, content); err != nil {
			return err
		}
	}

	r.HeadPointer = targetID
	r.StagingAdd = map[string]string{}
	r.StagingRm = map[string]bool{}
	return nil
}

// untrackedSafetyGate fails the whole operation, before any file is
// touched, if the incoming tree would silently overwrite a file the
// working directory has that current HEAD does not track.
func (r *Repository) untrackedSafetyGate(current *objects.Commit, incoming map[string]string) error {
	files, err := r.ws.PlainFiles()
	if err != nil {
		return err
	}
	for _, name := range files {
		if _, inIncoming := incoming[name]; !inIncoming {
			continue
		}
		if r.isTrackedAtHead(current, name) {
			continue
		}
		return vcserr.ErrUntrackedFileInTheWay
	}
	return nil
}

// isTrackedAtHead reports whether name's on-disk content currently
// matches what head records for it — the spec's specific notion of
// "tracked" used only for the untracked-safety gate.
func (r *Repository) isTrackedAtHead(head *objects.Commit, name string) bool {
	headBlob, ok := head.Tree[name]
	if !ok {
		return false
	}
	content, err := r.ws.ReadFile(name)
	if err != nil {
		return false
	}
	return r.ctx.Digest(content) == headBlob
}

package repo

import (
	"fmt"

	"gitlet/internal/dag"
	"gitlet/internal/objects"
	"gitlet/internal/vcserr"
	"go.uber.org/zap"
)

// MergeResult reports what Merge actually did, since a fast-forward and
// a conflict-free three-way merge both return success but the CLI
// prints a different line for each.
type MergeResult struct {
	FastForward bool
	Conflict    bool
	CommitID    string // empty when FastForward is true
}

// Merge merges otherBranch into the current branch. Preconditions are
// checked in the exact order the spec lists them, since the first
// failing one determines the message a caller sees and later checks
// must never run once an earlier one has failed.
func (r *Repository) Merge(otherBranch string) (MergeResult, error) {
	if len(r.StagingAdd) != 0 || len(r.StagingRm) != 0 {
		return MergeResult{}, vcserr.ErrUncommittedChanges
	}
	otherHead, ok := r.Heads[otherBranch]
	if !ok {
		return MergeResult{}, vcserr.ErrMergeBranchUnknown
	}
	if otherHead == r.HeadPointer {
		return MergeResult{}, vcserr.ErrMergeWithSelf
	}

	split, err := r.splitPoint(r.HeadPointer, otherHead)
	if err != nil {
		return MergeResult{}, err
	}
	if split == otherHead {
		return MergeResult{}, vcserr.ErrMergeGivenIsAncestor
	}
	if split == r.HeadPointer {
		previousHead := r.HeadPointer
		r.Heads[r.OnBranch] = otherHead
		if err := r.reconcile(otherHead); err != nil {
			r.Heads[r.OnBranch] = previousHead
			return MergeResult{}, err
		}
		return MergeResult{FastForward: true}, nil
	}

	return r.threeWayMerge(otherBranch, otherHead, split)
}

// splitPoint resolves the lowest common ancestor of two commit ids,
// consulting the memoized cache before walking the DAG: the walk never
// changes its answer for a given pair of immutable commit ids, so a hit
// is always safe to trust.
func (r *Repository) splitPoint(headA, headB string) (string, error) {
	if cached, ok, err := r.index.LookupSplitPoint(headA, headB); err == nil && ok {
		return cached, nil
	}
	load := func(id string) (*objects.Commit, error) { return r.store.LoadCommit(id) }
	sp, err := dag.SplitPoint(load, headA, headB)
	if err != nil {
		return "", err
	}
	if err := r.index.RecordSplitPoint(headA, headB, sp); err != nil && r.ctx.Logger != nil {
		r.ctx.Logger.Warn("failed to memoize split point", zap.Error(err))
	}
	return sp, nil
}

func (r *Repository) threeWayMerge(otherBranch, otherHead, splitID string) (MergeResult, error) {
	current, err := r.HeadCommit()
	if err != nil {
		return MergeResult{}, err
	}
	other, err := r.store.LoadCommit(otherHead)
	if err != nil {
		return MergeResult{}, err
	}
	split := &objects.Commit{Tree: map[string]string{}}
	if splitID != objects.NoParent {
		split, err = r.store.LoadCommit(splitID)
		if err != nil {
			return MergeResult{}, err
		}
	}

	if err := r.untrackedSafetyGate(current, other.Tree); err != nil {
		return MergeResult{}, err
	}

	conflict := false

	for name, sID := range split.Tree {
		cID, cOk := current.Tree[name]
		oID, oOk := other.Tree[name]

		switch {
		case cOk && cID == sID:
			switch {
			case !oOk:
				// case 1: unchanged on current side, removed on other.
				if err := r.ws.DeleteFile(name); err != nil {
					return MergeResult{}, err
				}
				r.StagingRm[name] = true
			case oID != cID:
				// case 2: unchanged on current side, changed on other.
				if err := r.writeTracked(name, oID); err != nil {
					return MergeResult{}, err
				}
				r.StagingAdd[name] = oID
			}
			// else: S = C = O, no-op.

		case oOk && oID == sID:
			// case 3 / 6: current side changed (or removed), other side
			// didn't. Current wins; no action needed.

		default:
			sameOutcome := cOk == oOk && (!cOk || cID == oID)
			if sameOutcome {
				// case 4 / 7: both sides made the identical change.
				continue
			}
			// case 5: both sides diverged from the split version.
			wrote, err := r.writeConflict(name, cOk, cID, oOk, oID)
			if err != nil {
				return MergeResult{}, err
			}
			conflict = conflict || wrote
		}
	}

	for name, cID := range current.Tree {
		if _, inSplit := split.Tree[name]; inSplit {
			continue
		}
		oID, oOk := other.Tree[name]
		switch {
		case !oOk:
			// case 8a: added only on the current side. Leave as-is.
		case oID == cID:
			// case 4: both sides added the identical file.
		default:
			// case 8c: both sides added the file, with different content.
			wrote, err := r.writeConflict(name, true, cID, true, oID)
			if err != nil {
				return MergeResult{}, err
			}
			conflict = conflict || wrote
		}
	}

	for name, oID := range other.Tree {
		if _, inSplit := split.Tree[name]; inSplit {
			continue
		}
		if _, inCurrent := current.Tree[name]; inCurrent {
			continue
		}
		// case 8b: added only on the other side.
		if err := r.writeTracked(name, oID); err != nil {
			return MergeResult{}, err
		}
		r.StagingAdd[name] = oID
	}

	message := fmt.Sprintf("Merged %s into %s.", otherBranch, r.OnBranch)
	id, err := r.commit(message, []string{r.HeadPointer, otherHead})
	if err != nil {
		return MergeResult{}, err
	}
	return MergeResult{Conflict: conflict, CommitID: id}, nil
}

// writeTracked materializes a blob already in the store onto the
// working tree, for the merge cases that simply adopt the other
// branch's version of a file.
func (r *Repository) writeTracked(name, blobID string) error {
	content, err := r.store.LoadBlob(blobID)
	if err != nil {
		return err
	}
	return r.ws.WriteFile(name, content)
}

// writeConflict synthesizes the exact conflict-marker bytes for name,
// writes them to the working tree, and stages the result the way a
// plain add would. If both sides' content is empty, there is nothing
// meaningful to mark as conflicting, so it writes and stages nothing
// and reports wrote = false.
func (r *Repository) writeConflict(name string, cOk bool, cID string, oOk bool, oID string) (wrote bool, err error) {
	var currentContent, otherContent []byte
	if cOk {
		c, err := r.store.LoadBlob(cID)
		if err != nil {
			return false, err
		}
		currentContent = c
	}
	if oOk {
		o, err := r.store.LoadBlob(oID)
		if err != nil {
			return false, err
		}
		otherContent = o
	}

	if len(currentContent) == 0 && len(otherContent) == 0 {
		return false, nil
	}

	merged := make([]byte, 0, len(currentContent)+len(otherContent)+32)
	merged = append(merged, "<<<<<<< HEAD\n"...)
	merged = append(merged, currentContent...)
	merged = append(merged, "=======\n"...)
	merged = append(merged, otherContent...)
	merged = append(merged, ">>>>>>>\n"...)

	if err := r.ws.WriteFile(name, merged); err != nil {
		return false, err
	}
	blobID, err := r.store.PutBlob(merged)
	if err != nil {
		return false, err
	}
	delete(r.StagingRm, name)
	r.StagingAdd[name] = blobID
	return true, nil
}

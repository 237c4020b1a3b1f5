package repo

import "gitlet/internal/vcserr"

// Add stages filename for the next commit. Its exact semantics — a
// pending removal simply cancels, a file that matches HEAD again is a
// no-op rather than a redundant stage entry — are what keep staging_add
// and staging_rm from ever drifting out of sync with what a commit
// would actually change.
func (r *Repository) Add(filename string) error {
	if !r.ws.Exists(filename) {
		return vcserr.ErrFileDoesNotExist
	}
	content, err := r.ws.ReadFile(filename)
	if err != nil {
		return err
	}
	blobID := r.ctx.Digest(content)

	head, err := r.HeadCommit()
	if err != nil {
		return err
	}

	switch {
	case r.StagingRm[filename]:
		delete(r.StagingRm, filename)
		if _, err := r.store.PutBlob(content); err != nil {
			return err
		}
	case blobID == head.Tree[filename]:
		delete(r.StagingAdd, filename)
	default:
		r.StagingAdd[filename] = blobID
		if _, err := r.store.PutBlob(content); err != nil {
			return err
		}
	}
	return nil
}

// Remove stages filename for removal, or unstages a pending addition,
// depending on how its working-directory, staged, and committed content
// relate to one another.
func (r *Repository) Remove(filename string) error {
	head, err := r.HeadCommit()
	if err != nil {
		return err
	}
	headID, headTracked := head.FileBlobID(filename)
	stagedID, staged := r.StagingAdd[filename]

	onDisk := r.ws.Exists(filename)
	var diskID string
	if onDisk {
		content, err := r.ws.ReadFile(filename)
		if err != nil {
			return err
		}
		diskID = r.ctx.Digest(content)
	}

	switch {
	case !onDisk:
		if !headTracked {
			return vcserr.ErrFileDoesNotExist
		}
		r.StagingRm[filename] = true
	case staged && diskID == stagedID:
		delete(r.StagingAdd, filename)
	case headTracked && diskID == headID:
		r.StagingRm[filename] = true
		if err := r.ws.DeleteFile(filename); err != nil {
			return err
		}
	default:
		return vcserr.ErrNoReasonToRemove
	}
	return nil
}

package main

import (
	"fmt"

	"gitlet/internal/diffview"
	"gitlet/internal/repo"
	"gitlet/internal/vcserr"
)

// renderDiff prints a line-level diff between filename as recorded in
// the current head commit and its current working-directory content.
// This is purely a display aid: the merge engine never uses it, and it
// cannot stage or change anything.
func renderDiff(r *repo.Repository, filename string) error {
	head, err := r.HeadCommit()
	if err != nil {
		return err
	}
	blobID, tracked := head.FileBlobID(filename)
	var before []byte
	if tracked {
		before, err = r.Store().LoadBlob(blobID)
		if err != nil {
			return err
		}
	}

	var after []byte
	if r.Workspace().Exists(filename) {
		after, err = r.Workspace().ReadFile(filename)
		if err != nil {
			return err
		}
	}

	if !tracked && len(after) == 0 {
		return vcserr.ErrFileDoesNotExist
	}

	lines := diffview.Compute(before, after)
	fmt.Print(diffview.Format(lines))
	return nil
}

package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeFastForward(t *testing.T) {
	r := initRepo(t)
	require.NoError(t, r.Branch("feature"))
	require.NoError(t, r.CheckoutBranch("feature"))
	writeFile(t, r, "f.txt", "feature content")
	require.NoError(t, r.Add("f.txt"))
	featureHead, err := r.Commit("feature work")
	require.NoError(t, err)

	require.NoError(t, r.CheckoutBranch("master"))
	result, err := r.Merge("feature")
	require.NoError(t, err)
	assert.True(t, result.FastForward)
	assert.Equal(t, featureHead, r.HeadPointer)
	assert.Equal(t, "master", r.OnBranch)
}

func TestMergeWithSelfFails(t *testing.T) {
	r := initRepo(t)
	require.NoError(t, r.Branch("feature"))
	_, err := r.Merge("master")
	assert.Error(t, err)
}

func TestMergeUnknownBranchFails(t *testing.T) {
	r := initRepo(t)
	_, err := r.Merge("ghost")
	assert.Error(t, err)
}

func TestMergeWithUncommittedChangesFails(t *testing.T) {
	r := initRepo(t)
	require.NoError(t, r.Branch("feature"))
	writeFile(t, r, "f.txt", "staged")
	require.NoError(t, r.Add("f.txt"))
	_, err := r.Merge("feature")
	assert.Error(t, err)
}

func TestMergeGivenBranchIsAncestorFails(t *testing.T) {
	r := initRepo(t)
	require.NoError(t, r.Branch("feature"))
	require.NoError(t, r.CheckoutBranch("feature"))
	writeFile(t, r, "f.txt", "feature content")
	require.NoError(t, r.Add("f.txt"))
	_, err := r.Commit("feature work")
	require.NoError(t, err)

	// master is an ancestor of feature now; merging master into feature
	// should report master as already reachable.
	_, err = r.Merge("master")
	assert.Error(t, err)
}

// divergentBranches builds: common ancestor commit with shared.txt, then
// master and feature each commit a different change to the same file,
// producing a genuine three-way conflict.
func divergentBranches(t *testing.T) *Repository {
	r := initRepo(t)
	writeFile(t, r, "shared.txt", "base")
	require.NoError(t, r.Add("shared.txt"))
	_, err := r.Commit("base commit")
	require.NoError(t, err)

	require.NoError(t, r.Branch("feature"))
	require.NoError(t, r.CheckoutBranch("feature"))
	writeFile(t, r, "shared.txt", "feature change")
	require.NoError(t, r.Add("shared.txt"))
	_, err = r.Commit("feature change")
	require.NoError(t, err)

	require.NoError(t, r.CheckoutBranch("master"))
	writeFile(t, r, "shared.txt", "master change")
	require.NoError(t, r.Add("shared.txt"))
	_, err = r.Commit("master change")
	require.NoError(t, err)

	return r
}

func TestMergeProducesConflictMarkers(t *testing.T) {
	r := divergentBranches(t)
	result, err := r.Merge("feature")
	require.NoError(t, err)
	assert.True(t, result.Conflict)

	content := readFile(t, r, "shared.txt")
	assert.Equal(t, "<<<<<<< HEAD\nmaster change=======\nfeature change>>>>>>>\n", content)

	head, err := r.HeadCommit()
	require.NoError(t, err)
	assert.True(t, head.IsMerge())
}

// TestMergeSkipsConflictWhenBothSidesAreEmpty covers the one case 5
// resolution that must not produce a conflict marker: the split version
// had real content, the current branch removed the file entirely, and
// the other branch replaced it with an empty-content blob. Both sides
// resolve to empty bytes, so there is nothing to mark as conflicting.
func TestMergeSkipsConflictWhenBothSidesAreEmpty(t *testing.T) {
	r := initRepo(t)
	writeFile(t, r, "f.txt", "base content")
	require.NoError(t, r.Add("f.txt"))
	_, err := r.Commit("base commit")
	require.NoError(t, err)

	require.NoError(t, r.Branch("feature"))
	require.NoError(t, r.CheckoutBranch("feature"))
	writeFile(t, r, "f.txt", "")
	require.NoError(t, r.Add("f.txt"))
	_, err = r.Commit("feature empties the file")
	require.NoError(t, err)

	require.NoError(t, r.CheckoutBranch("master"))
	require.NoError(t, r.Remove("f.txt"))
	_, err = r.Commit("master removes the file")
	require.NoError(t, err)

	result, err := r.Merge("feature")
	require.NoError(t, err)
	assert.False(t, result.Conflict, "both sides resolve to empty content; no conflict marker should be written")

	head, err := r.HeadCommit()
	require.NoError(t, err)
	_, tracked := head.FileBlobID("f.txt")
	assert.False(t, tracked, "writeConflict must not stage anything when it skips")
}

func TestMergeCleanThreeWay(t *testing.T) {
	r := initRepo(t)
	writeFile(t, r, "common.txt", "base")
	require.NoError(t, r.Add("common.txt"))
	_, err := r.Commit("base commit")
	require.NoError(t, err)

	require.NoError(t, r.Branch("feature"))
	require.NoError(t, r.CheckoutBranch("feature"))
	writeFile(t, r, "feature-only.txt", "from feature")
	require.NoError(t, r.Add("feature-only.txt"))
	_, err = r.Commit("feature adds a file")
	require.NoError(t, err)

	require.NoError(t, r.CheckoutBranch("master"))
	writeFile(t, r, "master-only.txt", "from master")
	require.NoError(t, r.Add("master-only.txt"))
	_, err = r.Commit("master adds a file")
	require.NoError(t, err)

	result, err := r.Merge("feature")
	require.NoError(t, err)
	assert.False(t, result.Conflict)
	assert.False(t, result.FastForward)

	head, err := r.HeadCommit()
	require.NoError(t, err)
	assert.Contains(t, head.Tree, "common.txt")
	assert.Contains(t, head.Tree, "feature-only.txt")
	assert.Contains(t, head.Tree, "master-only.txt")
	assert.Equal(t, "Merged feature into master.", head.Message)
}

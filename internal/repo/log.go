package repo

import (
	"fmt"
	"sort"
	"strings"

	"gitlet/internal/objects"
	"gitlet/internal/vcserr"
)

func formatEntry(id string, c *objects.Commit) string {
	var b strings.Builder
	b.WriteString("===\n")
	fmt.Fprintf(&b, "commit %s\n", id)
	if c.IsMerge() {
		fmt.Fprintf(&b, "Merge: %s %s\n", c.FirstParent()[:7], c.SecondParent()[:7])
	}
	fmt.Fprintf(&b, "Date: %s\n", c.Timestamp)
	fmt.Fprintf(&b, "%s\n", c.Message)
	return b.String()
}

// Log renders the first-parent history from the current head back to
// the initial commit.
func (r *Repository) Log() (string, error) {
	var entries []string
	id := r.HeadPointer
	for id != objects.NoParent {
		c, err := r.store.LoadCommit(id)
		if err != nil {
			return "", err
		}
		entries = append(entries, formatEntry(id, c))
		id = c.FirstParent()
	}
	return joinEntries(entries), nil
}

// GlobalLog renders every commit this repository has ever created, in
// the order they were made (most recent first).
func (r *Repository) GlobalLog() (string, error) {
	var entries []string
	for _, id := range r.AllCommits {
		c, err := r.store.LoadCommit(id)
		if err != nil {
			return "", err
		}
		entries = append(entries, formatEntry(id, c))
	}
	return joinEntries(entries), nil
}

// joinEntries concatenates log entries with the blank line §4.6
// specifies between them, trimming exactly one trailing newline off
// the end.
func joinEntries(entries []string) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Find returns the ids of every commit whose message contains keyword
// as a substring.
func (r *Repository) Find(keyword string) ([]string, error) {
	var matches []string
	for _, id := range r.AllCommits {
		c, err := r.store.LoadCommit(id)
		if err != nil {
			return nil, err
		}
		if strings.Contains(c.Message, keyword) {
			matches = append(matches, id)
		}
	}
	if len(matches) == 0 {
		return nil, vcserr.ErrNoCommitFoundByMessage
	}
	return matches, nil
}

// Status renders the five fixed sections, in fixed order, that every
// status invocation produces. The last two sections are always empty:
// the spec permits populating them but requires byte-exact headers
// either way, and an empty rendering is the one guaranteed to match
// any implementation's output.
func (r *Repository) Status() string {
	var b strings.Builder

	b.WriteString("=== Branches ===\n")
	names := make([]string, 0, len(r.Heads))
	for name := range r.Heads {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == r.OnBranch {
			b.WriteString("*")
		}
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("=== Staged Files ===\n")
	staged := make([]string, 0, len(r.StagingAdd))
	for name := range r.StagingAdd {
		staged = append(staged, name)
	}
	sort.Strings(staged)
	for _, name := range staged {
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("=== Removed Files ===\n")
	removed := make([]string, 0, len(r.StagingRm))
	for name := range r.StagingRm {
		removed = append(removed, name)
	}
	sort.Strings(removed)
	for _, name := range removed {
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("=== Modifications Not Staged For Commit ===\n")
	b.WriteString("\n")

	b.WriteString("=== Untracked Files ===\n")
	b.WriteString("\n")

	return strings.TrimSuffix(b.String(), "\n")
}

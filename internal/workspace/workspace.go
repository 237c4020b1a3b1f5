// Package workspace mediates every read, write, and delete the
// repository core performs against the working directory. It enforces
// the one filesystem rule the spec cares about: deletes never touch
// anything but plain files at the working directory's root, so a
// tracked subdirectory structure (which this system never creates) can
// never be mistaken for something safe to remove. Writes are not
// restricted that way: WriteFile writes to whatever path the name
// joins to under the root.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is the working directory a repository tracks. ignore names
// entries (by exact name) that listing operations skip — in practice
// just the persistence root directory itself.
type Workspace struct {
	root   string
	ignore map[string]bool
}

// New returns a Workspace rooted at dir. ignoreNames are entries that
// PlainFiles (the untracked-file scan's listing) never reports.
func New(dir string, ignoreNames ...string) *Workspace {
	ig := make(map[string]bool, len(ignoreNames))
	for _, n := range ignoreNames {
		ig[n] = true
	}
	return &Workspace{root: dir, ignore: ig}
}

func (w *Workspace) path(name string) string {
	return filepath.Join(w.root, name)
}

// Exists reports whether name exists as a plain file at the root.
func (w *Workspace) Exists(name string) bool {
	info, err := os.Stat(w.path(name))
	return err == nil && !info.IsDir()
}

// ReadFile returns the bytes of a plain file at the working directory
// root. It returns os.ErrNotExist, unwrapped, when the file is absent.
func (w *Workspace) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(w.path(name))
	if os.IsNotExist(err) {
		return nil, os.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// WriteFile replaces name's contents at the working directory root,
// creating it if absent. Writes are whole-file: there is no partial or
// append mode anywhere in this system.
func (w *Workspace) WriteFile(name string, content []byte) error {
	if err := os.WriteFile(w.path(name), content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// DeleteFile removes a plain file at the working directory root. It
// refuses to touch directories or anything outside the root — the
// restricted-delete rule that keeps reconciliation from ever recursing
// into, or destroying, a directory tree.
func (w *Workspace) DeleteFile(name string) error {
	p := w.path(name)
	if filepath.Dir(p) != filepath.Clean(w.root) {
		return fmt.Errorf("refusing to delete %s outside the working directory root", name)
	}
	info, err := os.Stat(p)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("statting %s: %w", name, err)
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to delete directory %s", name)
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("deleting %s: %w", name, err)
	}
	return nil
}

// PlainFiles lists the names of every plain (non-directory,
// non-ignored) file directly inside the working directory root. It
// never descends into subdirectories: the system has no notion of a
// tracked directory tree, only a flat namespace of root-level files.
func (w *Workspace) PlainFiles() ([]string, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("listing working directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || w.ignore[e.Name()] {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

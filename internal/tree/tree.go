package tree

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/nx-club/cz/internal/platform"
	"github.com/spf13/afero"
)

// DefaultMode is the permission set used by Write.
const DefaultMode os.FileMode = 0o644

// ChangeType classifies a pending change.
type ChangeType string

const (
	Create ChangeType = "CREATE"
	Update ChangeType = "UPDATE"
	Delete ChangeType = "DELETE"
)

// Change is a single pending file operation.
type Change struct {
	Path    string
	Type    ChangeType
	Content []byte
	Mode    os.FileMode
}

// Tree records writes, deletes and renames on top of an afero.Fs.
// Paths are slash-separated and relative to the workspace root.
type Tree struct {
	fs      afero.Fs
	changes map[string]*Change
	order   []string
}

// New returns a Tree backed by fsys.
func New(fsys afero.Fs) *Tree {
	return &Tree{
		fs:      fsys,
		changes: make(map[string]*Change),
	}
}

// NewOS returns a Tree rooted at the directory root on the real filesystem.
func NewOS(root string) *Tree {
	return New(afero.NewBasePathFs(afero.NewOsFs(), root))
}

// Fs returns the underlying filesystem. Pending changes are not visible
// through it.
func (t *Tree) Fs() afero.Fs {
	return t.fs
}

// Exists reports whether a file or directory exists at p, taking pending
// changes into account.
func (t *Tree) Exists(p string) bool {
	p = clean(p)
	if p == "." {
		return true
	}
	if c, ok := t.changes[p]; ok {
		return c.Type != Delete
	}

	prefix := p + "/"
	for name, c := range t.changes {
		if c.Type != Delete && strings.HasPrefix(name, prefix) {
			return true
		}
	}

	for name, c := range t.changes {
		if c.Type == Delete && strings.HasPrefix(p, name+"/") {
			return false
		}
	}

	ok, err := afero.Exists(t.fs, filepath.FromSlash(p))
	return err == nil && ok
}

// Read returns the content of the file at p.
func (t *Tree) Read(p string) ([]byte, error) {
	p = clean(p)
	if c, ok := t.changes[p]; ok {
		if c.Type == Delete {
			return nil, fmt.Errorf("reading %s: %w", p, os.ErrNotExist)
		}
		return append([]byte(nil), c.Content...), nil
	}

	data, err := afero.ReadFile(t.fs, filepath.FromSlash(p))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	return data, nil
}

// Write records content for the file at p with DefaultMode.
func (t *Tree) Write(p string, content []byte) {
	t.WriteMode(p, content, DefaultMode)
}

// WriteMode records content for the file at p with the given permissions.
func (t *Tree) WriteMode(p string, content []byte, mode os.FileMode) {
	p = clean(p)
	typ := Create
	if c, ok := t.changes[p]; ok {
		if c.Type != Create {
			typ = Update
		}
	} else if t.onDisk(p) {
		typ = Update
	}
	t.record(&Change{
		Path:    p,
		Type:    typ,
		Content: append([]byte(nil), content...),
		Mode:    mode,
	})
}

// Delete records the removal of the file or directory at p.
func (t *Tree) Delete(p string) {
	p = clean(p)
	if c, ok := t.changes[p]; ok && c.Type == Create {
		t.forget(p)
		return
	}
	if exists, _ := afero.Exists(t.fs, filepath.FromSlash(p)); !exists {
		t.forget(p)
		return
	}
	t.record(&Change{Path: p, Type: Delete})
}

// Rename moves the file at from to to.
func (t *Tree) Rename(from, to string) error {
	content, err := t.Read(from)
	if err != nil {
		return fmt.Errorf("renaming %s: %w", from, err)
	}
	mode := DefaultMode
	if c, ok := t.changes[clean(from)]; ok && c.Mode != 0 {
		mode = c.Mode
	}
	t.WriteMode(to, content, mode)
	t.Delete(from)
	return nil
}

// ListChanges returns the pending changes in the order they were first made.
func (t *Tree) ListChanges() []Change {
	out := make([]Change, 0, len(t.order))
	for _, p := range t.order {
		c := t.changes[p]
		out = append(out, Change{
			Path:    c.Path,
			Type:    c.Type,
			Content: append([]byte(nil), c.Content...),
			Mode:    c.Mode,
		})
	}
	return out
}

// Commit applies all pending changes to the underlying filesystem and
// clears them.
func (t *Tree) Commit() error {
	for _, p := range t.order {
		c := t.changes[p]
		osPath := filepath.FromSlash(c.Path)

		if c.Type == Delete {
			if err := t.fs.RemoveAll(osPath); err != nil {
				return fmt.Errorf("deleting %s: %w", c.Path, err)
			}
			continue
		}

		if dir := path.Dir(c.Path); dir != "." {
			if err := t.fs.MkdirAll(filepath.FromSlash(dir), 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dir, err)
			}
		}
		if err := afero.WriteFile(t.fs, osPath, c.Content, c.Mode); err != nil {
			return fmt.Errorf("writing %s: %w", c.Path, err)
		}
		// WriteFile leaves the mode of an existing file untouched.
		if err := platform.Chmod(t.fs, osPath, c.Mode); err != nil {
			return fmt.Errorf("setting permissions on %s: %w", c.Path, err)
		}
	}

	t.changes = make(map[string]*Change)
	t.order = nil
	return nil
}

func (t *Tree) onDisk(p string) bool {
	info, err := t.fs.Stat(filepath.FromSlash(p))
	return err == nil && !info.IsDir()
}

func (t *Tree) record(c *Change) {
	if _, ok := t.changes[c.Path]; !ok {
		t.order = append(t.order, c.Path)
	}
	t.changes[c.Path] = c
}

func (t *Tree) forget(p string) {
	if _, ok := t.changes[p]; !ok {
		return
	}
	delete(t.changes, p)
	for i, name := range t.order {
		if name == p {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// clean normalizes p to a slash-separated path relative to the root.
func clean(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimLeft(p, "/")
	return path.Clean(p)
}

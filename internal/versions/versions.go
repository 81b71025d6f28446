package versions

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

//go:embed versions.yaml
var rawVersions []byte

// LintStaged is the package dropped from the table when lint-staged is disabled.
const LintStaged = "lint-staged"

// Entry is one package pin.
type Entry struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Table is an ordered, immutable list of package pins.
type Table struct {
	entries []Entry
}

type file struct {
	Packages        []Entry `yaml:"packages"`
	VSCodeExtension string  `yaml:"vscode_extension"`
}

var (
	loadOnce     sync.Once
	loaded       file
	loadErr      error
	defaultTable Table
)

func load() {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(rawVersions, &loaded); err != nil {
			loadErr = fmt.Errorf("parsing embedded versions.yaml: %w", err)
			return
		}
		defaultTable, loadErr = New(loaded.Packages...)
	})
}

// Default returns the embedded version table. It panics if the embedded
// file is invalid, which is a build defect.
func Default() Table {
	load()
	if loadErr != nil {
		panic(loadErr)
	}
	return defaultTable
}

// VSCodeExtension returns the editor extension id recommended by init.
func VSCodeExtension() string {
	load()
	if loaded.VSCodeExtension == "" {
		return "KnisterPeter.vscode-commitizen"
	}
	return loaded.VSCodeExtension
}

// New builds a Table from entries. Every version must be a valid semver
// constraint and names must be unique.
func New(entries ...Entry) (Table, error) {
	seen := make(map[string]bool, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return Table{}, fmt.Errorf("version entry with empty name")
		}
		if seen[e.Name] {
			return Table{}, fmt.Errorf("duplicate version entry %q", e.Name)
		}
		if _, err := semver.NewConstraint(e.Version); err != nil {
			return Table{}, fmt.Errorf("invalid version %q for %s: %w", e.Version, e.Name, err)
		}
		seen[e.Name] = true
		out = append(out, e)
	}
	return Table{entries: out}, nil
}

// Entries returns a copy of the table's entries in declaration order.
func (t Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of entries.
func (t Table) Len() int { return len(t.entries) }

// Get returns the version pinned for name.
func (t Table) Get(name string) (string, bool) {
	for _, e := range t.entries {
		if e.Name == name {
			return e.Version, true
		}
	}
	return "", false
}

// Without returns a copy of the table with the named packages removed.
func (t Table) Without(names ...string) Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if !drop[e.Name] {
			out = append(out, e)
		}
	}
	return Table{entries: out}
}

// Constraint returns the parsed semver constraint for name.
func (t Table) Constraint(name string) (*semver.Constraints, error) {
	v, ok := t.Get(name)
	if !ok {
		return nil, fmt.Errorf("no version pinned for %s", name)
	}
	c, err := semver.NewConstraint(v)
	if err != nil {
		return nil, fmt.Errorf("parsing constraint %q for %s: %w", v, name, err)
	}
	return c, nil
}

package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Manager identifies a package manager by its executable name.
type Manager string

const (
	NPM  Manager = "npm"
	Yarn Manager = "yarn"
	PNPM Manager = "pnpm"
)

// Lockfiles, checked in this order.
var lockfiles = []struct {
	name    string
	manager Manager
}{
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
}

// Exister reports whether a path exists.
type Exister interface {
	Exists(path string) bool
}

// Detect returns the manager whose lockfile is present, defaulting to npm.
func Detect(fs Exister) Manager {
	for _, l := range lockfiles {
		if fs.Exists(l.name) {
			return l.manager
		}
	}
	return NPM
}

// Parse maps a name to a Manager. The empty string selects npm.
func Parse(name string) (Manager, error) {
	switch m := Manager(name); m {
	case "":
		return NPM, nil
	case NPM, Yarn, PNPM:
		return m, nil
	default:
		return "", fmt.Errorf("unsupported package manager %q", name)
	}
}

// Installer runs "<manager> install" in Dir.
type Installer struct {
	Manager Manager
	Dir     string

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Install runs the install command and waits for it to finish.
func (i *Installer) Install(ctx context.Context) error {
	m := i.Manager
	if m == "" {
		m = NPM
	}

	bin, err := exec.LookPath(string(m))
	if err != nil {
		return fmt.Errorf("%s is not installed: %w", m, err)
	}

	cmd := exec.CommandContext(ctx, bin, "install")
	cmd.Dir = i.Dir
	cmd.Stdout = i.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = i.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s install exited with code %d", m, exitErr.ExitCode())
		}
		return fmt.Errorf("running %s install: %w", m, err)
	}
	return nil
}

package pkgjson

import (
	"strings"

	"github.com/nx-club/cz/internal/versions"
)

// Script keys written by the init generator, including the fallback keys
// used when the user already owns the primary one.
const (
	ScriptPrepare         = "prepare"
	ScriptRelease         = "release"
	ScriptReleaseVersion  = "release-version"
	ScriptStandardVersion = "standard-version"
	ScriptCommit          = "commit"
	ScriptGitCZ           = "git-cz"
)

// Scripts holds the commands wired into package.json.
type Scripts struct {
	Prepare string
	Release string
	Commit  string
}

// DefaultScripts returns the commands installed by the init generator.
func DefaultScripts() Scripts {
	return Scripts{
		Prepare: "(is-ci || husky install) & (is-ci || standard-version --first-release)",
		Release: "standard-version --no-verify",
		Commit:  "git-cz",
	}
}

// MergeDependencies adds every entry of additions to devDependencies unless
// the package is already a runtime dependency. Existing devDependency pins
// are overwritten.
func MergeDependencies(m Manifest, additions versions.Table) Manifest {
	out := m.Clone()
	for _, e := range additions.Entries() {
		if out.Dependencies.Has(e.Name) {
			continue
		}
		out.DevDependencies.Set(e.Name, e.Version)
	}
	return out
}

// MergeScript sets the script key to command without discarding a
// user-defined script:
//
//   - prepare: an existing command is kept and chained with command.
//   - release: falls back to release-version, then standard-version.
//   - commit: falls back to git-cz.
//   - any other key is only set when absent.
//
// If command is already wired, under any key of its ladder, the manifest is
// returned unchanged instead of stepping further down the ladder.
func MergeScript(m Manifest, key, command string) Manifest {
	out := m.Clone()
	s := &out.Scripts

	switch key {
	case ScriptPrepare:
		existing, ok := present(*s, key)
		switch {
		case !ok:
			s.Set(key, command)
		case strings.Contains(existing, command):
		default:
			s.Set(key, "("+existing+") & "+command)
		}
	case ScriptRelease:
		setOnLadder(s, command, ScriptRelease, ScriptReleaseVersion, ScriptStandardVersion)
	case ScriptCommit:
		setOnLadder(s, command, ScriptCommit, ScriptGitCZ)
	default:
		if _, ok := present(*s, key); !ok {
			s.Set(key, command)
		}
	}
	return out
}

// MergeScripts applies MergeScript for prepare, release and commit.
func MergeScripts(m Manifest, scripts Scripts) Manifest {
	m = MergeScript(m, ScriptPrepare, scripts.Prepare)
	m = MergeScript(m, ScriptRelease, scripts.Release)
	return MergeScript(m, ScriptCommit, scripts.Commit)
}

// setOnLadder stores command under the first free key. The last key is
// written unconditionally.
func setOnLadder(s *Section, command string, keys ...string) {
	for _, k := range keys {
		if v, ok := s.Get(k); ok && v == command {
			return
		}
	}
	for i, k := range keys {
		if _, ok := present(*s, k); !ok || i == len(keys)-1 {
			s.Set(k, command)
			return
		}
	}
}

// present treats an empty script as absent.
func present(s Section, key string) (string, bool) {
	v, ok := s.Get(key)
	return v, ok && v != ""
}

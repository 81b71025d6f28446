package doctor

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/nx-club/cz/internal/husky"
	"github.com/nx-club/cz/internal/pkgjson"
	"github.com/nx-club/cz/internal/versions"
	"github.com/nx-club/cz/internal/workspace"
	"github.com/tidwall/gjson"
)

// Status is the outcome of a single check.
type Status string

const (
	OK   Status = "[ OK ]"
	Miss Status = "[MISS]"
	Warn Status = "[WARN]"
	Fail Status = "[FAIL]"
)

// Check is one line of the report.
type Check struct {
	Section string
	Status  Status
	Subject string
	Detail  string
}

// Report is the result of Run.
type Report struct {
	Checks []Check
}

// Healthy reports whether every check passed.
func (r *Report) Healthy() bool {
	for _, c := range r.Checks {
		if c.Status != OK {
			return false
		}
	}
	return true
}

// Print writes the report grouped by section.
func (r *Report) Print(w io.Writer) {
	section := ""
	for _, c := range r.Checks {
		if c.Section != section {
			if section != "" {
				fmt.Fprintln(w)
			}
			section = c.Section
			fmt.Fprintf(w, "%s check:\n", section)
		}
		if c.Detail == "" {
			fmt.Fprintf(w, "  %s %s\n", c.Status, c.Subject)
		} else {
			fmt.Fprintf(w, "  %s %s: %s\n", c.Status, c.Subject, c.Detail)
		}
	}
}

func (r *Report) add(section string, status Status, subject, detail string) {
	r.Checks = append(r.Checks, Check{Section: section, Status: status, Subject: subject, Detail: detail})
}

// Reader is the read side of a workspace file store.
type Reader interface {
	Exists(path string) bool
	Read(path string) ([]byte, error)
}

// ConfigFiles are written by init into every workspace.
var ConfigFiles = []string{".commit-scope.json", "commitlint.config.js", ".versionrc.json", ".cz-config.js"}

const lintStagedConfig = ".lintstagedrc.js"

// Run inspects the workspace readable through r against table.
func Run(r Reader, table versions.Table) *Report {
	rep := &Report{}

	checkWorkspace(rep, r)
	m, ok := checkManifest(rep, r)
	checkConfigFiles(rep, r, m, ok)
	if ok {
		checkScripts(rep, r, m)
		checkDependencies(rep, r, m, table)
	}
	checkHusky(rep, r)

	return rep
}

func checkWorkspace(rep *Report, r Reader) {
	const section = "Workspace"
	if r.Exists(".git") {
		rep.add(section, OK, ".git", "")
	} else {
		rep.add(section, Warn, ".git", "not a git repository; hooks and scripts are not wired")
	}

	desc, err := workspace.Load(r)
	if err != nil {
		rep.add(section, Fail, "workspace description", err.Error())
		return
	}
	b, err := workspace.Classify(desc)
	if err != nil {
		rep.add(section, Fail, "workspace description", err.Error())
		return
	}
	rep.add(section, OK, "workspace description",
		fmt.Sprintf("%s, %d apps, %d libs, %d packages", desc.Kind, len(b.Apps), len(b.Libs), len(b.Packages)))
}

func checkManifest(rep *Report, r Reader) (pkgjson.Manifest, bool) {
	data, err := r.Read(pkgjson.FileName)
	if err != nil {
		rep.add("Workspace", Miss, pkgjson.FileName, "")
		return pkgjson.Manifest{}, false
	}
	m, err := pkgjson.Parse(data)
	if err != nil {
		rep.add("Workspace", Fail, pkgjson.FileName, err.Error())
		return pkgjson.Manifest{}, false
	}
	rep.add("Workspace", OK, pkgjson.FileName, "")
	return m, true
}

func checkConfigFiles(rep *Report, r Reader, m pkgjson.Manifest, haveManifest bool) {
	const section = "Configuration"
	files := ConfigFiles
	if _, ok := m.Lookup(versions.LintStaged); haveManifest && ok {
		files = append(files[:len(files):len(files)], lintStagedConfig)
	}
	for _, f := range files {
		if r.Exists(f) {
			rep.add(section, OK, f, "")
		} else {
			rep.add(section, Miss, f, "run 'nxcz init'")
		}
	}
}

func checkScripts(rep *Report, r Reader, m pkgjson.Manifest) {
	const section = "Scripts"
	if !r.Exists(".git") {
		return
	}
	defaults := pkgjson.DefaultScripts()

	if v, _ := m.Scripts.Get(pkgjson.ScriptPrepare); strings.Contains(v, defaults.Prepare) {
		rep.add(section, OK, pkgjson.ScriptPrepare, "")
	} else {
		rep.add(section, Miss, pkgjson.ScriptPrepare, "husky install is not run on prepare")
	}

	checkLadder(rep, m, defaults.Release, pkgjson.ScriptRelease, pkgjson.ScriptReleaseVersion, pkgjson.ScriptStandardVersion)
	checkLadder(rep, m, defaults.Commit, pkgjson.ScriptCommit, pkgjson.ScriptGitCZ)
}

func checkLadder(rep *Report, m pkgjson.Manifest, command string, keys ...string) {
	for _, k := range keys {
		if v, _ := m.Scripts.Get(k); v == command {
			rep.add("Scripts", OK, k, command)
			return
		}
	}
	rep.add("Scripts", Miss, keys[0], fmt.Sprintf("no script runs %q", command))
}

func checkDependencies(rep *Report, r Reader, m pkgjson.Manifest, table versions.Table) {
	const section = "Dependencies"
	for _, e := range table.Entries() {
		if _, ok := m.Lookup(e.Name); !ok {
			// lint-staged is opt-in.
			if e.Name != versions.LintStaged {
				rep.add(section, Miss, e.Name, "not in package.json")
			}
			continue
		}

		installed, err := installedVersion(r, e.Name)
		if err != nil {
			rep.add(section, Warn, e.Name, err.Error())
			continue
		}
		c, err := table.Constraint(e.Name)
		if err != nil {
			rep.add(section, Fail, e.Name, err.Error())
			continue
		}
		if !c.Check(installed) {
			rep.add(section, Warn, e.Name, fmt.Sprintf("installed %s does not satisfy %s", installed, e.Version))
			continue
		}
		rep.add(section, OK, e.Name, installed.String())
	}
}

func installedVersion(r Reader, name string) (*semver.Version, error) {
	data, err := r.Read(path.Join("node_modules", name, pkgjson.FileName))
	if err != nil {
		return nil, fmt.Errorf("not installed")
	}
	raw := gjson.GetBytes(data, "version").String()
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("installed version %q is not semver", raw)
	}
	return v, nil
}

func checkHusky(rep *Report, r Reader) {
	const section = "Git hooks"
	style := husky.Detect(r)

	installed, verr := installedVersion(r, "husky")
	if verr == nil {
		modern := installed.Major() >= 7
		switch {
		case style == husky.StyleDir && !modern:
			rep.add(section, Warn, "husky", fmt.Sprintf("%s needs husky 7 or later, found %s", husky.Dir, installed))
		case style != husky.StyleDir && modern:
			rep.add(section, Warn, "husky", fmt.Sprintf("husky %s ignores %s", installed, style))
		}
	}

	if style == husky.StyleDir {
		data, err := r.Read(husky.CommitMsgHookFile)
		switch {
		case err != nil:
			rep.add(section, Miss, husky.CommitMsgHookFile, "")
		case !strings.Contains(string(data), "commitlint"):
			rep.add(section, Warn, husky.CommitMsgHookFile, "does not run commitlint")
		default:
			rep.add(section, OK, husky.CommitMsgHookFile, "")
		}
		return
	}

	data, err := r.Read(style.String())
	if err != nil || !husky.HasLegacyHook(data, "") {
		rep.add(section, Miss, style.String(), "hooks.commit-msg does not run commitlint")
		return
	}
	rep.add(section, OK, style.String(), "")
}

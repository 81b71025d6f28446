package pkgjson

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nx-club/cz/internal/versions"
)

func manifestWithScripts(t *testing.T, pairs ...string) Manifest {
	t.Helper()
	m := mustParse(t, `{"dependencies": {}, "devDependencies": {}}`)
	m.Scripts = NewSection(pairs...)
	return m
}

func TestMergeDependencies(t *testing.T) {
	table := versions.Default()
	m := mustParse(t, `{"dependencies": {}, "devDependencies": {"husky": "^4.3.0", "jest": "27.0.0"}}`)

	got := MergeDependencies(m, table)

	for _, e := range table.Entries() {
		if v, _ := got.DevDependencies.Get(e.Name); v != e.Version {
			t.Errorf("devDependencies[%s] = %q, want %q", e.Name, v, e.Version)
		}
	}
	if v, _ := got.DevDependencies.Get("jest"); v != "27.0.0" {
		t.Errorf("unrelated devDependency changed: jest = %q", v)
	}
	if v, _ := m.DevDependencies.Get("husky"); v != "^4.3.0" {
		t.Errorf("input manifest mutated: husky = %q", v)
	}
}

func TestMergeDependenciesSkipsRuntimeDependencies(t *testing.T) {
	for _, e := range versions.Default().Entries() {
		t.Run(e.Name, func(t *testing.T) {
			m := mustParse(t, `{"dependencies": {}, "devDependencies": {}}`)
			m.Dependencies.Set(e.Name, "x.x.x")

			got := MergeDependencies(m, versions.Default())

			if v, _ := got.Dependencies.Get(e.Name); v != "x.x.x" {
				t.Errorf("dependencies[%s] = %q, want x.x.x", e.Name, v)
			}
			if got.DevDependencies.Has(e.Name) {
				t.Errorf("%s added to devDependencies although it is a dependency", e.Name)
			}
		})
	}
}

func TestMergeDependenciesKeepsExistingOverlap(t *testing.T) {
	m := mustParse(t, `{"dependencies": {"commitizen": "^4.0.0"}, "devDependencies": {"commitizen": "^3.0.0"}}`)

	got := MergeDependencies(m, versions.Default())

	if v, _ := got.Dependencies.Get("commitizen"); v != "^4.0.0" {
		t.Errorf("dependencies[commitizen] = %q, want ^4.0.0", v)
	}
	if v, _ := got.DevDependencies.Get("commitizen"); v != "^3.0.0" {
		t.Errorf("devDependencies[commitizen] = %q, want the existing ^3.0.0", v)
	}
}

func TestMergeDependenciesScenario(t *testing.T) {
	m := mustParse(t, `{"dependencies": {"husky": "x.x.x"}, "devDependencies": {}}`)
	additions, err := versions.New(versions.Entry{Name: "husky", Version: "^7.0.0"})
	if err != nil {
		t.Fatal(err)
	}

	got := MergeDependencies(m, additions)

	if diff := cmp.Diff(map[string]string{"husky": "x.x.x"}, got.Dependencies.Map()); diff != "" {
		t.Errorf("dependencies mismatch (-want +got):\n%s", diff)
	}
	if got.DevDependencies.Len() != 0 {
		t.Errorf("devDependencies = %v, want empty", got.DevDependencies.Map())
	}
}

func TestMergeScriptPrepare(t *testing.T) {
	const cmd = "(is-ci || husky install) & (is-ci || standard-version --first-release)"

	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"absent", nil, cmd},
		{"empty", []string{"prepare", ""}, cmd},
		{"user command kept", []string{"prepare", "npm run build"}, "(npm run build) & " + cmd},
		{"already wired", []string{"prepare", "(npm run build) & " + cmd}, "(npm run build) & " + cmd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := manifestWithScripts(t, tt.existing...)
			got := MergeScript(m, ScriptPrepare, cmd)
			if v, _ := got.Scripts.Get(ScriptPrepare); v != tt.want {
				t.Errorf("prepare = %q, want %q", v, tt.want)
			}
		})
	}
}

func TestMergeScriptReleaseLadder(t *testing.T) {
	const cmd = "standard-version --no-verify"

	tests := []struct {
		name     string
		existing []string
		want     map[string]string
	}{
		{
			name: "release free",
			want: map[string]string{"release": cmd},
		},
		{
			name:     "release taken",
			existing: []string{"release", "semantic-release"},
			want:     map[string]string{"release": "semantic-release", "release-version": cmd},
		},
		{
			name:     "release and release-version taken",
			existing: []string{"release", "semantic-release", "release-version", "lerna version"},
			want: map[string]string{
				"release":          "semantic-release",
				"release-version":  "lerna version",
				"standard-version": cmd,
			},
		},
		{
			name:     "already on ladder",
			existing: []string{"release", "semantic-release", "release-version", cmd},
			want:     map[string]string{"release": "semantic-release", "release-version": cmd},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := manifestWithScripts(t, tt.existing...)
			got := MergeScript(m, ScriptRelease, cmd)
			if diff := cmp.Diff(tt.want, got.Scripts.Map()); diff != "" {
				t.Errorf("scripts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeScriptCommit(t *testing.T) {
	m := manifestWithScripts(t)
	got := MergeScript(m, ScriptCommit, "git-cz")
	if diff := cmp.Diff(map[string]string{"commit": "git-cz"}, got.Scripts.Map()); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}

	m = manifestWithScripts(t, "commit", "cz")
	got = MergeScript(m, ScriptCommit, "git-cz")
	if diff := cmp.Diff(map[string]string{"commit": "cz", "git-cz": "git-cz"}, got.Scripts.Map()); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeScriptOtherKey(t *testing.T) {
	m := manifestWithScripts(t, "lint", "eslint .")
	got := MergeScript(m, "lint", "nx lint")
	got = MergeScript(got, "format", "nx format")

	want := map[string]string{"lint": "eslint .", "format": "nx format"}
	if diff := cmp.Diff(want, got.Scripts.Map()); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeScriptsIsIdempotent(t *testing.T) {
	m := manifestWithScripts(t, "prepare", "npm run build", "release", "semantic-release", "commit", "cz")

	once := MergeScripts(m, DefaultScripts())
	twice := MergeScripts(once, DefaultScripts())

	if diff := cmp.Diff(once.Scripts.Map(), twice.Scripts.Map()); diff != "" {
		t.Errorf("second merge changed scripts (-first +second):\n%s", diff)
	}
	if m.Scripts.Len() != 3 {
		t.Errorf("input manifest mutated: %v", m.Scripts.Map())
	}
}

package versions

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	table := Default()
	if table.Len() != 11 {
		t.Fatalf("Default().Len() = %d, want 11", table.Len())
	}

	want := map[string]string{
		"husky":            "^7.0.0",
		"@commitlint/cli":  "^16.2.0",
		"standard-version": "^9.3.2",
		"lint-staged":      "^12.4.0",
	}
	for name, version := range want {
		got, ok := table.Get(name)
		if !ok || got != version {
			t.Errorf("Get(%q) = %q, %v; want %q", name, got, ok, version)
		}
	}

	if got := VSCodeExtension(); got != "KnisterPeter.vscode-commitizen" {
		t.Errorf("VSCodeExtension() = %q", got)
	}
}

func TestWithoutDoesNotMutate(t *testing.T) {
	table := Default()
	filtered := table.Without(LintStaged)

	if _, ok := filtered.Get(LintStaged); ok {
		t.Error("filtered table still contains lint-staged")
	}
	if filtered.Len() != table.Len()-1 {
		t.Errorf("filtered.Len() = %d, want %d", filtered.Len(), table.Len()-1)
	}
	if _, ok := table.Get(LintStaged); !ok {
		t.Error("original table lost lint-staged")
	}
	if _, ok := Default().Get(LintStaged); !ok {
		t.Error("Default() lost lint-staged after Without")
	}
}

func TestEntriesIsACopy(t *testing.T) {
	table, err := New(Entry{Name: "husky", Version: "^7.0.0"})
	if err != nil {
		t.Fatal(err)
	}
	entries := table.Entries()
	entries[0].Version = "0.0.0"

	if diff := cmp.Diff([]Entry{{Name: "husky", Version: "^7.0.0"}}, table.Entries()); diff != "" {
		t.Errorf("table mutated through Entries() (-want +got):\n%s", diff)
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty name", []Entry{{Name: "", Version: "^1.0.0"}}},
		{"duplicate", []Entry{{Name: "a", Version: "^1.0.0"}, {Name: "a", Version: "^2.0.0"}}},
		{"bad constraint", []Entry{{Name: "a", Version: "not-a-version"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.entries...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConstraint(t *testing.T) {
	c, err := Default().Constraint("husky")
	if err != nil {
		t.Fatalf("Constraint() error: %v", err)
	}
	if !c.Check(semver.MustParse("7.0.4")) {
		t.Error("husky 7.0.4 should satisfy ^7.0.0")
	}
	if c.Check(semver.MustParse("8.0.1")) {
		t.Error("husky 8.0.1 should not satisfy ^7.0.0")
	}

	if _, err := Default().Constraint("left-pad"); err == nil {
		t.Error("expected error for unknown package")
	}
}

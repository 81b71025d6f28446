//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nx-club/cz/internal/pkgjson"
	"github.com/nx-club/cz/internal/versions"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// newWorkspace writes a minimal Nx workspace with two projects and a git
// directory into a temp dir and returns its root.
func newWorkspace(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFile(t, root, "package.json", `{
  "name": "proj",
  "version": "0.0.0",
  "scripts": {
    "build": "nx build"
  },
  "dependencies": {
    "tslib": "^2.3.0"
  },
  "devDependencies": {
    "@nrwl/workspace": "13.8.1"
  }
}
`)
	writeFile(t, root, "workspace.json", `{
  "version": 2,
  "projects": {
    "proj": "apps/proj",
    "proj-e2e": "apps/proj-e2e",
    "shared-ui": "libs/shared/ui"
  }
}
`)
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	return root
}

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func readFile(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

// nodeModules installs every devDependency of package.json into
// node_modules at the lowest version its range allows.
type nodeModules struct {
	root  string
	calls int
}

func (n *nodeModules) Install(ctx context.Context) error {
	n.calls++
	data, err := os.ReadFile(filepath.Join(n.root, pkgjson.FileName))
	if err != nil {
		return err
	}
	var werr error
	gjson.GetBytes(data, "devDependencies").ForEach(func(k, v gjson.Result) bool {
		manifest, err := sjson.SetBytes([]byte(`{}`), "version", strings.TrimLeft(v.String(), "^~"))
		if err != nil {
			werr = err
			return false
		}
		dir := filepath.Join(n.root, "node_modules", filepath.FromSlash(k.String()))
		if werr = os.MkdirAll(dir, 0o755); werr != nil {
			return false
		}
		werr = os.WriteFile(filepath.Join(dir, pkgjson.FileName), manifest, 0o644)
		return werr == nil
	})
	return werr
}

// devDependencyNames lists the names init adds with lint-staged enabled.
func devDependencyNames() []string {
	var names []string
	for _, e := range versions.Default().Entries() {
		names = append(names, e.Name)
	}
	return names
}

package scaffold

import (
	"strings"

	"github.com/nx-club/cz/internal/workspace"
)

// WorkspaceScopes are the commit scopes every workspace gets on top of its
// projects.
var WorkspaceScopes = []string{"workspace", "deps", "config", "ci", "docs", "release", "tools", "e2e"}

// InitData holds the variables of the init template set.
type InitData struct {
	IsPlugin       bool
	Apps           []string
	Libs           []string
	Packages       []string
	WorkspaceScope []string
}

// NewInitData selects the buckets used by the commit scopes: plugin
// workspaces only list packages, application workspaces only apps and libs.
func NewInitData(b workspace.Buckets, plugin bool) *InitData {
	d := &InitData{IsPlugin: plugin, WorkspaceScope: WorkspaceScopes}
	if plugin {
		d.Packages = nonNil(b.Packages)
	} else {
		d.Apps = nonNil(b.Apps)
		d.Libs = nonNil(b.Libs)
	}
	return d
}

// LibraryData holds the variables of the mvc template set.
type LibraryData struct {
	Name         string // e.g. "orders"
	FileName     string // file name stem, e.g. "orders"
	ClassName    string // e.g. "Orders"
	PropertyName string // e.g. "orders"
	ProjectName  string // e.g. "shop-orders"
	ProjectRoot  string // e.g. "libs/shop/orders"
	Tags         []string
	Executor     string
}

// NewLibraryData derives the names of a library called name placed under
// libs/<directory>.
func NewLibraryData(name, directory string, tags []string, executor string) *LibraryData {
	directory = strings.Trim(directory, "/")
	d := &LibraryData{
		Name:        name,
		FileName:    name,
		ClassName:   className(name),
		ProjectName: name,
		ProjectRoot: "libs/" + name,
		Tags:        nonNil(tags),
		Executor:    executor,
	}
	d.PropertyName = strings.ToLower(d.ClassName[:1]) + d.ClassName[1:]
	if directory != "" {
		d.ProjectName = strings.ReplaceAll(directory, "/", "-") + "-" + name
		d.ProjectRoot = "libs/" + directory + "/" + name
	}
	return d
}

// className converts kebab-case to PascalCase.
func className(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "-") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

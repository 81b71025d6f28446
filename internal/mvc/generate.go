package mvc

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/nx-club/cz/internal/scaffold"
	"github.com/nx-club/cz/internal/tree"
	"github.com/nx-club/cz/internal/workspace"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// BuildExecutor is the executor of the build target of generated libraries.
const BuildExecutor = "nx-nest/mvc:build"

// ProjectFile is the per-project configuration file.
const ProjectFile = "project.json"

var (
	// ErrInvalidName is returned for library names or directories that are
	// not lower-case kebab-case.
	ErrInvalidName = errors.New("invalid name")
	// ErrProjectExists is returned when the target directory or project name
	// is already taken.
	ErrProjectExists = errors.New("project already exists")
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Options configures library generation.
type Options struct {
	Name      string
	Directory string   // optional, relative to libs/
	Tags      []string // project tags
}

// Library describes a generated library.
type Library struct {
	Name  string // project name
	Root  string
	Files []string
}

// Generate writes a new library into t and registers it in a version 2
// workspace.json when one exists.
func Generate(t *tree.Tree, opts Options) (*Library, error) {
	if !namePattern.MatchString(opts.Name) {
		return nil, fmt.Errorf("%w: %q must match %s", ErrInvalidName, opts.Name, namePattern)
	}
	dir := strings.Trim(opts.Directory, "/")
	if dir != "" {
		for _, seg := range strings.Split(dir, "/") {
			if !namePattern.MatchString(seg) {
				return nil, fmt.Errorf("%w: directory segment %q must match %s", ErrInvalidName, seg, namePattern)
			}
		}
	}

	data := scaffold.NewLibraryData(opts.Name, dir, opts.Tags, BuildExecutor)
	if t.Exists(data.ProjectRoot) {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, data.ProjectRoot)
	}
	if desc, err := workspace.Load(t); err == nil {
		if p, ok := desc.Find(data.ProjectName); ok {
			return nil, fmt.Errorf("%w: %s is already declared at %s", ErrProjectExists, data.ProjectName, p.Path)
		}
	}

	result, err := scaffold.Generate(t, scaffold.Options{
		Set:   scaffold.SetMVC,
		Dest:  data.ProjectRoot,
		Data:  data,
		Names: map[string]string{"fileName": data.FileName},
	})
	if err != nil {
		return nil, err
	}

	if err := register(t, data.ProjectName, data.ProjectRoot); err != nil {
		return nil, err
	}

	return &Library{Name: data.ProjectName, Root: data.ProjectRoot, Files: result.Files}, nil
}

// ParseTags splits a comma-separated tag list, dropping blanks.
func ParseTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// register adds the project to a version 2 workspace.json. Other layouts
// discover project.json files on their own.
func register(t *tree.Tree, name, root string) error {
	if !t.Exists(workspace.WorkspaceFile) {
		return nil
	}
	data, err := t.Read(workspace.WorkspaceFile)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(data) || gjson.GetBytes(data, "version").Int() < workspace.MinPathMapVersion {
		return nil
	}

	key := "projects." + name
	if gjson.GetBytes(data, key).Exists() {
		return fmt.Errorf("%w: %s is already registered in %s", ErrProjectExists, name, workspace.WorkspaceFile)
	}
	out, err := sjson.SetBytes(data, key, path.Clean(root))
	if err != nil {
		return fmt.Errorf("registering %s in %s: %w", name, workspace.WorkspaceFile, err)
	}
	t.Write(workspace.WorkspaceFile, pretty.Pretty(out))
	return nil
}

package mvc

import (
	"errors"
	"fmt"
	"path"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/nx-club/cz/internal/workspace"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// ProjectGlob matches the project files of a workspace without a registry.
const ProjectGlob = "{apps,libs,packages}/**/" + ProjectFile

// ErrProjectNotFound is returned when no project has the requested name.
var ErrProjectNotFound = errors.New("project not found")

// Project is a project.json located in a workspace.
type Project struct {
	Name string
	Root string
	Data []byte
}

// Executor returns the executor of target.
func (p *Project) Executor(target string) (string, bool) {
	r := gjson.GetBytes(p.Data, "targets."+target+".executor")
	return r.String(), r.Exists()
}

// FindProject locates the project called name, consulting workspace.json
// first and falling back to a glob over the project directories.
func FindProject(fsys afero.Fs, name string) (*Project, error) {
	if root, ok := registeredRoot(fsys, name); ok {
		p, err := readProject(fsys, path.Join(root, ProjectFile))
		if err != nil {
			return nil, err
		}
		p.Name = name
		return p, nil
	}

	matches, err := doublestar.Glob(afero.NewIOFS(fsys), ProjectGlob)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", ProjectGlob, err)
	}
	for _, m := range matches {
		p, err := readProject(fsys, m)
		if err != nil {
			continue
		}
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
}

func registeredRoot(fsys afero.Fs, name string) (string, bool) {
	data, err := afero.ReadFile(fsys, workspace.WorkspaceFile)
	if err != nil {
		return "", false
	}
	entry := gjson.GetBytes(data, "projects."+gjson.Escape(name))
	switch {
	case entry.Type == gjson.String:
		return entry.String(), true
	case entry.IsObject() && entry.Get("root").Exists():
		return entry.Get("root").String(), true
	}
	return "", false
}

func readProject(fsys afero.Fs, file string) (*Project, error) {
	data, err := afero.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s is not valid JSON", file)
	}
	root := gjson.GetBytes(data, "root").String()
	if root == "" {
		root = path.Dir(file)
	}
	return &Project{
		Name: gjson.GetBytes(data, "name").String(),
		Root: root,
		Data: data,
	}, nil
}

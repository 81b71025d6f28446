package workspace

import (
	"bytes"
	_ "embed"
	"fmt"
	"path"

	"github.com/nx-club/cz/internal/schema"
	"github.com/tidwall/gjson"
)

var (
	//go:embed schema/path-map.schema.json
	pathMapSchema []byte
	//go:embed schema/typed.schema.json
	typedSchema []byte
)

var validators = map[Kind]*schema.Validator{
	KindPathMap: schema.MustCompile("path-map.schema.json", pathMapSchema),
	KindTyped:   schema.MustCompile("typed.schema.json", typedSchema),
}

// Reader is the read side of a workspace file store.
type Reader interface {
	Exists(path string) bool
	Read(path string) ([]byte, error)
}

// Load reads the first description file present in r and detects it.
func Load(r Reader) (*Description, error) {
	for _, name := range []string{WorkspaceFile, AngularFile} {
		if !r.Exists(name) {
			continue
		}
		data, err := r.Read(name)
		if err != nil {
			return nil, err
		}
		return Detect(Document{Name: name, Data: data})
	}
	return nil, fmt.Errorf("%w: neither %s nor %s found", ErrUnknownWorkspaceFormat, WorkspaceFile, AngularFile)
}

// Detect identifies the shape of doc and decodes it. The file name selects
// the candidate shape; the content must then validate against that shape's
// schema.
func Detect(doc Document) (*Description, error) {
	kind := kindOf(doc.Name)
	if kind == KindUnknown {
		return nil, fmt.Errorf("%w: unsupported description file %q", ErrUnknownWorkspaceFormat, doc.Name)
	}
	if len(bytes.TrimSpace(doc.Data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrUnknownWorkspaceFormat, doc.Name)
	}

	result, err := validators[kind].Validate(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownWorkspaceFormat, doc.Name, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnknownWorkspaceFormat, doc.Name, result.Summary())
	}

	if kind == KindPathMap {
		return decodePathMap(doc.Data), nil
	}
	return decodeTyped(doc.Data), nil
}

func kindOf(name string) Kind {
	switch path.Base(name) {
	case WorkspaceFile:
		return KindPathMap
	case AngularFile:
		return KindTyped
	default:
		return KindUnknown
	}
}

func decodePathMap(data []byte) *Description {
	d := &Description{
		Kind:    KindPathMap,
		Version: int(gjson.GetBytes(data, "version").Int()),
	}
	if d.Version < MinPathMapVersion {
		return d
	}

	gjson.GetBytes(data, "projects").ForEach(func(key, value gjson.Result) bool {
		root := value.String()
		if value.IsObject() {
			root = value.Get("root").String()
		}
		d.Projects = append(d.Projects, ProjectEntry{ID: key.String(), Path: root})
		return true
	})
	return d
}

func decodeTyped(data []byte) *Description {
	d := &Description{
		Kind:    KindTyped,
		Version: int(gjson.GetBytes(data, "version").Int()),
	}
	gjson.GetBytes(data, "projects").ForEach(func(key, value gjson.Result) bool {
		d.Projects = append(d.Projects, ProjectEntry{
			ID:   key.String(),
			Path: value.Get("root").String(),
			Type: ProjectType(value.Get("projectType").String()),
		})
		return true
	})
	return d
}

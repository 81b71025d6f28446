package workspace

import "errors"

// ErrUnknownWorkspaceFormat is returned when no supported workspace
// description can be found or the document matches no known shape.
var ErrUnknownWorkspaceFormat = errors.New("unknown workspace")

// Description files, in lookup order.
const (
	WorkspaceFile = "workspace.json"
	AngularFile   = "angular.json"
)

// MinPathMapVersion is the first workspace.json version whose projects are
// classified. Older documents yield empty buckets.
const MinPathMapVersion = 2

// E2ESuffix marks end-to-end test shadow projects, dropped from the apps bucket.
const E2ESuffix = "-e2e"

// Source roots used to classify path-map projects.
const (
	AppsRoot     = "apps"
	LibsRoot     = "libs"
	PackagesRoot = "packages"
)

// Kind tags the detected description shape.
type Kind int

const (
	KindUnknown Kind = iota
	// KindPathMap is workspace.json: project id -> path, plus a version marker.
	KindPathMap
	// KindTyped is angular.json: project id -> descriptor with projectType.
	KindTyped
)

func (k Kind) String() string {
	switch k {
	case KindPathMap:
		return "path-map"
	case KindTyped:
		return "typed"
	default:
		return "unknown"
	}
}

// ProjectType is the projectType tag of a typed descriptor.
type ProjectType string

const (
	TypeApplication ProjectType = "application"
	TypeLibrary     ProjectType = "library"
)

// ProjectEntry is one project of a description.
type ProjectEntry struct {
	ID   string
	Path string      // project root; always set for KindPathMap
	Type ProjectType // only set for KindTyped
}

// Description is a detected workspace description. Projects keep document order.
type Description struct {
	Kind     Kind
	Version  int
	Projects []ProjectEntry
}

// Find returns the project with the given id.
func (d *Description) Find(id string) (ProjectEntry, bool) {
	for _, p := range d.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return ProjectEntry{}, false
}

// Document is a raw workspace description and the file it was read from.
type Document struct {
	Name string
	Data []byte
}

// Buckets partitions project ids by category. The three lists are disjoint.
type Buckets struct {
	Apps     []string
	Libs     []string
	Packages []string
}

// Empty reports whether no project was classified.
func (b Buckets) Empty() bool {
	return len(b.Apps) == 0 && len(b.Libs) == 0 && len(b.Packages) == 0
}

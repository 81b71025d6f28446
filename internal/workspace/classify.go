package workspace

import (
	"fmt"
	"strings"
)

// Classify partitions the projects of d into buckets.
//
// Path-map descriptions older than MinPathMapVersion produce empty buckets.
// Identifiers ending in E2ESuffix are dropped from the apps bucket only.
func Classify(d *Description) (Buckets, error) {
	if d == nil {
		return Buckets{}, fmt.Errorf("%w: no description", ErrUnknownWorkspaceFormat)
	}

	b := Buckets{Apps: []string{}, Libs: []string{}, Packages: []string{}}
	seen := make(map[string]bool, len(d.Projects))

	switch d.Kind {
	case KindPathMap:
		if d.Version < MinPathMapVersion {
			return b, nil
		}
		for _, p := range d.Projects {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true

			switch {
			case under(p.Path, PackagesRoot):
				b.Packages = append(b.Packages, p.ID)
			case under(p.Path, AppsRoot):
				if !IsE2E(p.ID) {
					b.Apps = append(b.Apps, p.ID)
				}
			case under(p.Path, LibsRoot):
				b.Libs = append(b.Libs, p.ID)
			}
		}

	case KindTyped:
		for _, p := range d.Projects {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true

			switch p.Type {
			case TypeApplication:
				if !IsE2E(p.ID) {
					b.Apps = append(b.Apps, p.ID)
				}
			case TypeLibrary:
				b.Libs = append(b.Libs, p.ID)
			}
		}

	default:
		return Buckets{}, fmt.Errorf("%w: kind %s", ErrUnknownWorkspaceFormat, d.Kind)
	}

	return b, nil
}

// IsE2E reports whether id names an end-to-end test project.
func IsE2E(id string) bool {
	return strings.HasSuffix(id, E2ESuffix)
}

func under(p, root string) bool {
	p = strings.TrimPrefix(p, "./")
	return strings.HasPrefix(p, root+"/")
}

package pkgjson

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/nx-club/cz/internal/schema"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FileName is the package manifest at the workspace root.
const FileName = "package.json"

// Top-level keys managed by this package.
const (
	KeyDependencies    = "dependencies"
	KeyDevDependencies = "devDependencies"
	KeyScripts         = "scripts"
)

// ErrMalformedManifest is returned when package.json lacks a required
// section or a section has the wrong shape.
var ErrMalformedManifest = errors.New("malformed package manifest")

//go:embed package.schema.json
var manifestSchema []byte

var validator = schema.MustCompile("package.schema.json", manifestSchema)

// Manifest is a decoded package.json.
type Manifest struct {
	Dependencies    Section
	DevDependencies Section
	Scripts         Section

	raw  []byte
	orig [3]Section
}

// Parse decodes and validates a package.json document.
func Parse(data []byte) (Manifest, error) {
	result, err := validator.Validate(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	if !result.Valid {
		return Manifest{}, fmt.Errorf("%w: %s", ErrMalformedManifest, result.Summary())
	}

	m := Manifest{
		Dependencies:    sectionOf(gjson.GetBytes(data, KeyDependencies)),
		DevDependencies: sectionOf(gjson.GetBytes(data, KeyDevDependencies)),
		Scripts:         sectionOf(gjson.GetBytes(data, KeyScripts)),
		raw:             data,
	}
	m.orig = [3]Section{m.Dependencies.Clone(), m.DevDependencies.Clone(), m.Scripts.Clone()}
	return m, nil
}

// Clone returns a deep copy of m.
func (m Manifest) Clone() Manifest {
	return Manifest{
		Dependencies:    m.Dependencies.Clone(),
		DevDependencies: m.DevDependencies.Clone(),
		Scripts:         m.Scripts.Clone(),
		raw:             m.raw,
		orig:            m.orig,
	}
}

// Lookup returns the version of name from dependencies, then devDependencies.
func (m Manifest) Lookup(name string) (string, bool) {
	if v, ok := m.Dependencies.Get(name); ok {
		return v, true
	}
	return m.DevDependencies.Get(name)
}

// Changed reports whether any managed section differs from the parsed document.
func (m Manifest) Changed() bool {
	return !m.Dependencies.Equal(m.orig[0]) ||
		!m.DevDependencies.Equal(m.orig[1]) ||
		!m.Scripts.Equal(m.orig[2])
}

// Encode writes the changed sections back into the original document.
// Keys outside the managed sections are left byte-for-byte intact.
func (m Manifest) Encode() ([]byte, error) {
	out := append([]byte(nil), m.raw...)
	indent := detectIndent(m.raw)

	sections := []struct {
		key  string
		cur  Section
		orig Section
	}{
		{KeyDependencies, m.Dependencies, m.orig[0]},
		{KeyDevDependencies, m.DevDependencies, m.orig[1]},
		{KeyScripts, m.Scripts, m.orig[2]},
	}

	for _, s := range sections {
		if s.cur.Equal(s.orig) {
			continue
		}
		obj, err := s.cur.marshal(indent, indent)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", s.key, err)
		}
		out, err = sjson.SetRawBytes(out, s.key, obj)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", s.key, err)
		}
	}
	return out, nil
}

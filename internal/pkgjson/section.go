package pkgjson

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Section is an insertion-ordered string map, the shape of the
// dependencies, devDependencies and scripts blocks.
type Section struct {
	keys   []string
	values map[string]string
}

// NewSection builds a Section from alternating key/value pairs.
func NewSection(pairs ...string) Section {
	var s Section
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i], pairs[i+1])
	}
	return s
}

func sectionOf(r gjson.Result) Section {
	var s Section
	r.ForEach(func(key, value gjson.Result) bool {
		s.Set(key.String(), value.String())
		return true
	})
	return s
}

// Get returns the value stored under key.
func (s Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present.
func (s Section) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Len returns the number of keys.
func (s Section) Len() int { return len(s.keys) }

// Keys returns the keys in insertion order.
func (s Section) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Map returns the section as a plain map.
func (s Section) Map() map[string]string {
	m := make(map[string]string, len(s.keys))
	for k, v := range s.values {
		m[k] = v
	}
	return m
}

// Set stores value under key, keeping the position of an existing key.
func (s *Section) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Clone returns a deep copy.
func (s Section) Clone() Section {
	var out Section
	for _, k := range s.keys {
		out.Set(k, s.values[k])
	}
	return out
}

// Equal reports whether both sections hold the same keys in the same order
// with the same values.
func (s Section) Equal(o Section) bool {
	if len(s.keys) != len(o.keys) {
		return false
	}
	for i, k := range s.keys {
		if o.keys[i] != k || o.values[k] != s.values[k] {
			return false
		}
	}
	return true
}

// marshal renders the section as an indented JSON object whose closing
// brace sits at depth.
func (s Section) marshal(depth, step string) ([]byte, error) {
	if len(s.keys) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, k := range s.keys {
		key, err := quote(k)
		if err != nil {
			return nil, err
		}
		val, err := quote(s.values[k])
		if err != nil {
			return nil, err
		}
		buf.WriteString(depth + step)
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(s.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(depth + "}")
	return buf.Bytes(), nil
}

// quote encodes s as a JSON string without HTML escaping, so shell
// operators like & stay readable.
func quote(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// detectIndent returns the indentation of the first indented line of a
// JSON document, defaulting to two spaces.
func detectIndent(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed != line && strings.HasPrefix(trimmed, `"`) {
			return line[:len(line)-len(trimmed)]
		}
	}
	return "  "
}

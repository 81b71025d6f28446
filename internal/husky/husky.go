package husky

import (
	"bytes"
	"fmt"

	"github.com/nx-club/cz/internal/platform"
	"github.com/nx-club/cz/internal/tree"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.yaml.in/yaml/v3"
)

// Configuration locations, in detection order.
const (
	RCJSONFile = ".huskyrc.json"
	RCFile     = ".huskyrc"
	Dir        = ".husky"
)

// CommitMsgHookFile is the hook script written for the directory style.
const CommitMsgHookFile = Dir + "/commit-msg"

// LegacyHookCommand is the commit-msg entry of a hooks map.
const LegacyHookCommand = "commitlint -E HUSKY_GIT_PARAMS"

// CommitMsgScript is the content of .husky/commit-msg.
const CommitMsgScript = `#!/bin/sh
. "$(dirname "$0")/_/husky.sh"

npx commitlint --edit "$1"
`

const hookKey = "commit-msg"

// Style is a husky configuration style.
type Style int

const (
	// StyleDir is the .husky/ directory of husky 7 and later.
	StyleDir Style = iota
	// StyleRCJSON is a .huskyrc.json file with a hooks map.
	StyleRCJSON
	// StyleRC is a .huskyrc file, JSON or YAML, with a hooks map.
	StyleRC
)

func (s Style) String() string {
	switch s {
	case StyleRCJSON:
		return RCJSONFile
	case StyleRC:
		return RCFile
	default:
		return Dir
	}
}

// Exister reports whether a path exists.
type Exister interface {
	Exists(path string) bool
}

// Detect returns the configuration style in use. A workspace without any
// husky configuration gets the directory style.
func Detect(fs Exister) Style {
	switch {
	case fs.Exists(RCJSONFile):
		return StyleRCJSON
	case fs.Exists(RCFile):
		return StyleRC
	default:
		return StyleDir
	}
}

// Install writes the commit-msg hook for style into t.
func Install(t *tree.Tree, style Style) error {
	if style == StyleDir {
		t.WriteMode(CommitMsgHookFile, []byte(CommitMsgScript), platform.Executable)
		return nil
	}

	name := style.String()
	var doc []byte
	if t.Exists(name) {
		data, err := t.Read(name)
		if err != nil {
			return err
		}
		doc = data
	}

	var (
		out []byte
		err error
	)
	if style == StyleRC && !isJSON(doc) {
		out, err = setYAMLHook(doc)
	} else {
		out, err = SetLegacyHook(doc, "")
	}
	if err != nil {
		return fmt.Errorf("updating %s: %w", name, err)
	}
	t.Write(name, out)
	return nil
}

// SetLegacyHook sets hooks.commit-msg inside the JSON object at prefix of
// doc. An empty prefix addresses the document root.
func SetLegacyHook(doc []byte, prefix string) ([]byte, error) {
	if len(bytes.TrimSpace(doc)) == 0 {
		doc = []byte("{}")
	}
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("invalid JSON")
	}

	hooks := "hooks"
	if prefix != "" {
		hooks = prefix + ".hooks"
	}
	if h := gjson.GetBytes(doc, hooks); h.Exists() && !h.IsObject() {
		return nil, fmt.Errorf("%s is not an object", hooks)
	}
	return sjson.SetBytes(doc, hooks+"."+hookKey, LegacyHookCommand)
}

// HasLegacyHook reports whether the hooks map at prefix already runs commitlint.
func HasLegacyHook(doc []byte, prefix string) bool {
	hooks := "hooks"
	if prefix != "" {
		hooks = prefix + ".hooks"
	}
	return gjson.GetBytes(doc, hooks+"."+hookKey).String() == LegacyHookCommand
}

func isJSON(doc []byte) bool {
	trimmed := bytes.TrimSpace(doc)
	return len(trimmed) == 0 || (trimmed[0] == '{' && gjson.ValidBytes(trimmed))
}

// setYAMLHook edits a YAML .huskyrc through its node tree so comments and
// key order survive.
func setYAMLHook(doc []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("empty YAML document")
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level is not a mapping")
	}

	hooks := mappingValue(top, "hooks")
	if hooks == nil {
		hooks = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		top.Content = append(top.Content, scalar("hooks"), hooks)
	}
	if hooks.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("hooks is not a mapping")
	}

	if v := mappingValue(hooks, hookKey); v != nil {
		v.Kind, v.Tag, v.Value, v.Style = yaml.ScalarNode, "!!str", LegacyHookCommand, 0
	} else {
		hooks.Content = append(hooks.Content, scalar(hookKey), scalar(LegacyHookCommand))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"text/template"

	"github.com/nx-club/cz/internal/tree"
)

//go:embed all:templates
var templateFS embed.FS

// Template sets.
const (
	SetInit = "init"
	SetMVC  = "mvc"
)

// Options configures a Generate call.
type Options struct {
	Set   string            // template set under templates/
	Dest  string            // destination directory relative to the tree root
	Data  any               // template variables
	Names map[string]string // __key__ path substitutions
	Skip  []string          // output paths, relative to Dest, left unwritten
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Files []string // tree paths, in template walk order
}

var funcs = template.FuncMap{
	"json": toJSON,
	"join": strings.Join,
}

// Generate renders the template set into t.
func Generate(t *tree.Tree, opts Options) (*Result, error) {
	root := path.Join("templates", opts.Set)
	if opts.Set == "" {
		return nil, fmt.Errorf("no template set given")
	}
	if _, err := fs.Stat(templateFS, root); err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", opts.Set, err)
	}

	result := &Result{}
	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		raw, err := fs.ReadFile(templateFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		rel := substitute(strings.TrimPrefix(p, root+"/"), opts.Names)
		tmpl := strings.HasSuffix(rel, ".tmpl")
		rel = strings.TrimSuffix(rel, ".tmpl")
		if slices.Contains(opts.Skip, rel) {
			return nil
		}

		content := raw
		if tmpl {
			content, err = render(p, raw, opts.Data)
			if err != nil {
				return err
			}
		}

		out := path.Join(opts.Dest, rel)
		t.Write(out, content)
		result.Files = append(result.Files, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func render(name string, raw []byte, data any) ([]byte, error) {
	tmpl, err := template.New(path.Base(name)).Funcs(funcs).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// substitute replaces __key__ markers in a slash path.
func substitute(p string, names map[string]string) string {
	for k, v := range names {
		p = strings.ReplaceAll(p, "__"+k+"__", v)
	}
	return p
}

// toJSON renders v as compact JSON. A nil slice renders as [].
func toJSON(v any) (string, error) {
	if s, ok := v.([]string); ok && s == nil {
		return "[]", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

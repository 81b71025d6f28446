package mvc

import (
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrUnknownExecutor is returned for targets whose executor is not built in.
var ErrUnknownExecutor = errors.New("unknown executor")

// Executor runs a target with its options.
type Executor func(w io.Writer, p *Project, options []byte) error

var executors = map[string]Executor{
	BuildExecutor: runBuild,
}

// RunTarget runs target of p, writing progress to w.
func RunTarget(w io.Writer, p *Project, target string) error {
	name, ok := p.Executor(target)
	if !ok {
		return fmt.Errorf("project %s has no %s target", p.Name, target)
	}
	exec, ok := executors[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExecutor, name)
	}

	options := []byte(gjson.GetBytes(p.Data, "targets."+target+".options").Raw)
	if len(options) == 0 {
		options = []byte("{}")
	}
	return exec(w, p, options)
}

// runBuild echoes its options; the library has nothing to compile.
func runBuild(w io.Writer, _ *Project, options []byte) error {
	_, err := fmt.Fprintf(w, "Executor ran for Build %s\n", pretty.Ugly(options))
	return err
}

package cli

import (
	"fmt"
	"io"

	"github.com/nx-club/cz/internal/config"
	"github.com/nx-club/cz/internal/generator"
	"github.com/nx-club/cz/internal/pkgmgr"
	"github.com/nx-club/cz/internal/tree"
	"github.com/spf13/cobra"
)

var (
	initLanguage       string
	initWorkspaceType  string
	initLintStaged     bool
	initSkipFormat     bool
	initSkipInstall    bool
	initDryRun         bool
	initPackageManager string
)

func init() {
	f := initCmd.Flags()
	f.StringVar(&initLanguage, config.KeyLanguage, "cn", "Language of the commit prompt (cn, en)")
	f.StringVar(&initWorkspaceType, config.KeyWorkspaceType, "application", "Workspace type (application, plugin)")
	f.BoolVar(&initLintStaged, config.KeyLintStaged, true, "Add lint-staged and .lintstagedrc.js")
	f.BoolVar(&initSkipFormat, config.KeySkipFormat, false, "Do not re-indent the changed JSON files")
	f.BoolVar(&initSkipInstall, config.KeySkipInstall, false, "Do not run the package manager install")
	f.StringVar(&initPackageManager, config.KeyPackageManager, "", "Package manager (npm, yarn, pnpm; default: detected from the lockfile)")
	f.BoolVar(&initDryRun, "dry-run", false, "Print the changes without writing them")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up commit conventions in the workspace",
	Long: `Add commitlint, commitizen, standard-version and husky to the workspace.

Writes .commit-scope.json, commitlint.config.js, .cz-config.js, .versionrc.json
and (with --lint-staged) .lintstagedrc.js, adds the tools to devDependencies,
wires the prepare, release and commit scripts and installs the commit-msg hook.

Flags not given on the command line fall back to ~/.nxcz/config.yaml and
NXCZ_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := workspaceRoot()
		if err != nil {
			return err
		}
		opts := initOptions(cmd)

		t := tree.NewOS(root)
		manager, err := packageManager(cmd, t)
		if err != nil {
			return err
		}

		g := &generator.Generator{
			Tree: t,
			Installer: &pkgmgr.Installer{
				Manager: manager,
				Dir:     root,
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			},
		}

		changes, err := g.Run(cmd.Context(), opts)
		printChanges(cmd.OutOrStdout(), changes)
		if err != nil {
			return err
		}
		if opts.DryRun {
			fmt.Fprintln(cmd.OutOrStdout(), "\nNOTE: The \"dry-run\" flag means no changes were made.")
		}
		return nil
	},
}

// initOptions resolves every option from its flag when given and from the
// user configuration otherwise.
func initOptions(cmd *cobra.Command) generator.Options {
	f := cmd.Flags()
	str := func(key, flag string) string {
		if f.Changed(key) {
			return flag
		}
		return config.Get(key)
	}
	boolean := func(key string, flag bool) bool {
		if f.Changed(key) {
			return flag
		}
		return config.GetBool(key)
	}

	return generator.Options{
		Language:      str(config.KeyLanguage, initLanguage),
		WorkspaceType: str(config.KeyWorkspaceType, initWorkspaceType),
		LintStaged:    boolean(config.KeyLintStaged, initLintStaged),
		SkipFormat:    boolean(config.KeySkipFormat, initSkipFormat),
		SkipInstall:   boolean(config.KeySkipInstall, initSkipInstall),
		DryRun:        initDryRun,
	}
}

func packageManager(cmd *cobra.Command, t *tree.Tree) (pkgmgr.Manager, error) {
	name := config.Get(config.KeyPackageManager)
	if cmd.Flags().Changed(config.KeyPackageManager) {
		name = initPackageManager
	}
	if name == "" {
		return pkgmgr.Detect(t), nil
	}
	return pkgmgr.Parse(name)
}

func printChanges(w io.Writer, changes []tree.Change) {
	for _, c := range changes {
		fmt.Fprintf(w, "%s %s\n", c.Type, c.Path)
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nx-club/cz/internal/branding"
	"github.com/nx-club/cz/internal/versions"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
	versionTools bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().BoolVar(&versionTools, "tools", false, "Also list the devDependency versions written by init")
	rootCmd.AddCommand(versionCmd)
}

// versionInfo is the --json shape. Tools keeps the order of the version table.
type versionInfo struct {
	Plugin  string        `json:"plugin"`
	Version string        `json:"version"`
	Commit  string        `json:"commit"`
	Date    string        `json:"date"`
	Tools   []toolVersion `json:"tools,omitempty"`
}

type toolVersion struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the build information of ` + branding.CLIName() + `.

With --tools the commit tooling pinned by init is listed as well, which is
what 'init' adds to devDependencies when lint-staged is enabled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		var tools []toolVersion
		if versionTools {
			for _, e := range versions.Default().Entries() {
				tools = append(tools, toolVersion{Name: e.Name, Version: e.Version})
			}
		}

		if versionJSON {
			data, err := json.MarshalIndent(versionInfo{
				Plugin:  branding.PluginName(),
				Version: buildVersion,
				Commit:  buildCommit,
				Date:    buildDate,
				Tools:   tools,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		fmt.Fprintf(out, "replaces %s\n", branding.PluginName())
		printTools(out, tools)
		return nil
	},
}

func printTools(w io.Writer, tools []toolVersion) {
	if len(tools) == 0 {
		return
	}
	fmt.Fprintln(w, "\nTools:")
	for _, t := range tools {
		fmt.Fprintf(w, "  %-34s %s\n", t.Name, t.Version)
	}
}

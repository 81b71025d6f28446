package cli

import (
	"github.com/nx-club/cz/internal/mvc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build <project>",
	Short: "Run the build target of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := workspaceRoot()
		if err != nil {
			return err
		}

		p, err := mvc.FindProject(afero.NewBasePathFs(afero.NewOsFs(), root), args[0])
		if err != nil {
			return err
		}
		return mvc.RunTarget(cmd.OutOrStdout(), p, "build")
	},
}

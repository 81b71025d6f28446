package cli

import (
	"errors"

	"github.com/nx-club/cz/internal/doctor"
	"github.com/nx-club/cz/internal/tree"
	"github.com/nx-club/cz/internal/versions"
	"github.com/spf13/cobra"
)

var doctorStrict bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorStrict, "strict", false, "Exit with an error unless every check passes")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the commit tooling of the workspace",
	Long:  `Report missing configuration files, scripts, dependencies and git hooks.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := workspaceRoot()
		if err != nil {
			return err
		}

		rep := doctor.Run(tree.NewOS(root), versions.Default())
		rep.Print(cmd.OutOrStdout())
		if doctorStrict && !rep.Healthy() {
			return errors.New("workspace has failing checks")
		}
		return nil
	},
}

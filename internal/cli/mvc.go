package cli

import (
	"fmt"

	"github.com/nx-club/cz/internal/mvc"
	"github.com/nx-club/cz/internal/tree"
	"github.com/spf13/cobra"
)

var (
	mvcDirectory string
	mvcTags      string
	mvcDryRun    bool
)

func init() {
	mvcCmd.Flags().StringVarP(&mvcDirectory, "directory", "d", "", "Directory under libs/ where the library is placed")
	mvcCmd.Flags().StringVarP(&mvcTags, "tags", "t", "", "Comma-separated tags added to project.json")
	mvcCmd.Flags().BoolVar(&mvcDryRun, "dry-run", false, "Print the changes without writing them")
	rootCmd.AddCommand(mvcCmd)
}

var mvcCmd = &cobra.Command{
	Use:   "mvc <name>",
	Short: "Scaffold a model/view/controller library",
	Long: `Create libs/[<directory>/]<name> with a model, a view, a controller and a
project.json whose build target runs the nx-nest/mvc:build executor.

Examples:
  nxcz mvc orders
  nxcz mvc orders --directory shop --tags scope:shop,type:mvc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := workspaceRoot()
		if err != nil {
			return err
		}

		t := tree.NewOS(root)
		lib, err := mvc.Generate(t, mvc.Options{
			Name:      args[0],
			Directory: mvcDirectory,
			Tags:      mvc.ParseTags(mvcTags),
		})
		if err != nil {
			return err
		}

		printChanges(cmd.OutOrStdout(), t.ListChanges())
		if mvcDryRun {
			fmt.Fprintln(cmd.OutOrStdout(), "\nNOTE: The \"dry-run\" flag means no changes were made.")
			return nil
		}
		if err := t.Commit(); err != nil {
			return fmt.Errorf("writing %s: %w", lib.Root, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nCreated project %s at %s\n", lib.Name, lib.Root)
		return nil
	},
}

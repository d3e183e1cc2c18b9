// Init command creates a workspace in the current directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/charter/internal/workspace"
)

var (
	flagInitName   string
	flagInitPrefix string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a charter workspace in the current directory",
	Long: `Init creates the .charter directory with its document directories, the
index database, and a vision document titled after the project. Running init
in an existing workspace fills in whatever is missing and changes nothing
else.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := os.Getwd()
		if err != nil {
			return err
		}
		if flagWorkspace != "" {
			base = flagWorkspace
		}

		_, result, err := workspace.Init(base, workspace.InitOptions{
			ProjectName: flagInitName,
			Prefix:      flagInitPrefix,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(result)
		}
		if result.Created {
			fmt.Println("Workspace created at", result.Root)
		} else {
			fmt.Println("Workspace already present at", result.Root)
		}
		fmt.Println("  short code prefix:", result.Prefix)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&flagInitName, "name", "", "project name (default: directory name)")
	initCmd.Flags().StringVar(&flagInitPrefix, "prefix", "", "short code prefix (default: derived from project name)")
}

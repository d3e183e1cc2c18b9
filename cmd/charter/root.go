// Root command for the charter CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/charter/internal/workspace"
	"github.com/mesh-intelligence/charter/pkg/charter"
)

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagWorkspace string
	flagJSON      bool
)

var rootCmd = &cobra.Command{
	Use:     "charter",
	Short:   "Charter manages hierarchical project documents as markdown files",
	Version: charter.Version,
	Long: `Charter keeps a project's vision, strategies, initiatives, tasks, and
decision records as markdown files with YAML frontmatter. The files are the
source of truth; a SQLite index caches them for listing and search and can
always be rebuilt from the files.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagWorkspace, "workspace", "", "workspace directory (default: nearest .charter above the working directory)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(phaseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(configCmd)
}

// openService locates the workspace from the --workspace flag or the working
// directory and returns a service over it.
func openService() (*workspace.Service, error) {
	start := flagWorkspace
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		start = cwd
	}
	return workspace.Open(start)
}

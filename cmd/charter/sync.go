// Sync command reconciles the index with the markdown tree.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the index with the files on disk",
	Long: `Sync diffs every document file against the index by content hash,
importing new files, updating changed ones, and pruning rows whose file is
gone. A missing or corrupt index database is rebuilt from scratch. Files the
engine cannot read or parse are reported as warnings and skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		result, err := svc.Sync()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(result)
		}
		fmt.Printf("imported %d, updated %d, deleted %d, unchanged %d\n",
			len(result.Imported), len(result.Updated), len(result.Deleted), len(result.Unchanged))
		for _, w := range result.Warnings {
			warn(w)
		}
		return nil
	},
}

// Archive command moves a document subtree into the archived/ mirror.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <ref>",
	Short: "Archive a document and all of its descendants",
	Long: `Archive marks the document and every descendant as archived and moves
their files under archived/, preserving the directory layout. Phases and
content are untouched. Documents that fail to move are reported; the ones
already moved stay archived.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		result, err := svc.Archive(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(result)
		}
		for _, rel := range result.Archived {
			fmt.Println("Archived", rel)
		}
		for _, failure := range result.Failed {
			warn(fmt.Sprintf("%s: %s", failure.Filepath, failure.Reason))
		}
		return nil
	},
}

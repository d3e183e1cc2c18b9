// Validate command checks every document in the workspace.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every document for structural problems",
	Long: `Validate synchronizes the workspace and reports unparseable files,
unknown phases, malformed short codes, and unresolvable parent or blocker
references.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		result, err := svc.Validate()
		if err != nil {
			return err
		}

		if flagJSON {
			if err := printJSON(result); err != nil {
				return err
			}
		} else {
			for _, w := range result.Warnings {
				warn(w)
			}
			for _, doc := range result.Documents {
				fmt.Println(doc.Filepath)
				for _, problem := range doc.Problems {
					fmt.Println("  -", problem)
				}
			}
			if result.OK() {
				fmt.Println("Workspace is valid")
			}
		}

		if !result.OK() {
			os.Exit(exitUserError)
		}
		return nil
	},
}

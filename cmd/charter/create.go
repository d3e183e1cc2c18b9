// Create command adds a new document from its type's template.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/charter/internal/workspace"
	"github.com/mesh-intelligence/charter/pkg/types"
)

var flagCreateParent string

var createCmd = &cobra.Command{
	Use:   "create <type> <title>",
	Short: "Create a document",
	Long: `Create writes a new document of the given type from its template, assigns
the next short code, and indexes it.

Types: vision, strategy, initiative, task, adr

Example:
  charter create strategy "Expand into EU markets"
  charter create task "Wire up billing" --parent PROJ-I-0002`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		docType, err := types.ParseDocumentType(args[0])
		if err != nil {
			return err
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		rec, err := svc.Create(workspace.CreateOptions{
			Type:   docType,
			Title:  args[1],
			Parent: flagCreateParent,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(rec)
		}
		fmt.Println("Created", codeColor.Sprint(rec.ShortCode), "at", rec.Filepath)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&flagCreateParent, "parent", "", "parent document (short code or id)")
}

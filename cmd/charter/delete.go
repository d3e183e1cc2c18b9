// Delete command removes a document's file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <ref>",
	Short: "Delete a document's file",
	Long: `Delete removes the document's backing file and its index row. Children
are not deleted; their parent references are pruned on the next sync.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		rel, err := svc.Delete(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(map[string]string{"deleted": rel})
		}
		fmt.Println("Deleted", rel)
		return nil
	},
}

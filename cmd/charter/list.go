// List command enumerates documents with optional filtering.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/pkg/types"
)

var (
	flagListType     string
	flagListPhase    string
	flagListArchived bool
	flagListAll      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Long: `List prints documents ordered by short code. Archived documents are
hidden unless --archived or --all is given.

Example:
  charter list
  charter list --type task --phase active
  charter list --archived`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter index.Filter

		if flagListType != "" {
			docType, err := types.ParseDocumentType(flagListType)
			if err != nil {
				return err
			}
			filter.Type = docType
		}
		if flagListPhase != "" {
			phase, err := types.ParsePhase(flagListPhase)
			if err != nil {
				return err
			}
			filter.Phase = phase
		}
		if !flagListAll {
			filter.Archived = &flagListArchived
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		recs, err := svc.List(filter)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(recs)
		}
		for _, rec := range recs {
			printRecordLine(rec)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&flagListType, "type", "", "filter by document type")
	listCmd.Flags().StringVar(&flagListPhase, "phase", "", "filter by phase")
	listCmd.Flags().BoolVar(&flagListArchived, "archived", false, "list archived documents instead of live ones")
	listCmd.Flags().BoolVar(&flagListAll, "all", false, "list live and archived documents")
}

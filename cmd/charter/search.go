// Search command runs full-text queries over titles and content.
package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Full-text search over document titles and content",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		recs, err := svc.Search(strings.Join(args, " "))
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

// Check command ticks exit criteria checklist items.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var flagCheckUndo bool

var checkCmd = &cobra.Command{
	Use:   "check <ref> <criterion>...",
	Short: "Mark an exit criteria item done",
	Long: `Check marks the checklist item matching the given text as done in the
document's exit criteria section. --undo unchecks it instead.

Example:
  charter check PROJ-T-0004 "Ship the migration"
  charter check PROJ-T-0004 "Ship the migration" --undo`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		text := strings.Join(args[1:], " ")
		rec, err := svc.CheckCriterion(args[0], text, !flagCheckUndo)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(rec)
		}
		fmt.Println(codeColor.Sprint(rec.ShortCode), "exit criteria:", criteriaLabel(rec.ExitCriteriaMet))
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&flagCheckUndo, "undo", false, "uncheck the item instead")
}

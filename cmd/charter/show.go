// Show command prints one document.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagShowChildren bool

var showCmd = &cobra.Command{
	Use:   "show <ref>",
	Short: "Show a document by short code or id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		rec, err := svc.Get(args[0])
		if err != nil {
			return err
		}

		if flagShowChildren {
			children, err := svc.Children(args[0])
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(map[string]any{"document": rec, "children": children})
			}
			printRecord(rec)
			if len(children) > 0 {
				fmt.Println("  children:")
				for _, child := range children {
					fmt.Print("  ")
					printRecordLine(child)
				}
			}
			return nil
		}

		if flagJSON {
			return printJSON(rec)
		}
		printRecord(rec)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&flagShowChildren, "children", false, "include direct children")
}

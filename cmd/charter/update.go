// Update command edits one H2 section of a document's body.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagUpdateContent string
	flagUpdateAppend  bool
)

var updateCmd = &cobra.Command{
	Use:   "update <ref> <section>",
	Short: "Replace or append to a section of a document",
	Long: `Update rewrites the named H2 section of the document's body with the
given content. A missing section is added at the end. Content comes from
--content, or from stdin when the flag is absent.

Example:
  charter update PROJ-S-0001 "Current State" --content "Rollout is at 40%."
  cat notes.md | charter update PROJ-S-0001 "Current State"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := flagUpdateContent
		if !cmd.Flags().Changed("content") {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = string(raw)
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		rec, err := svc.UpdateSection(args[0], args[1], content, flagUpdateAppend)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(rec)
		}
		fmt.Println("Updated", codeColor.Sprint(rec.ShortCode))
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&flagUpdateContent, "content", "", "section content (default: read from stdin)")
	updateCmd.Flags().BoolVar(&flagUpdateAppend, "append", false, "append to the section instead of replacing it")
}

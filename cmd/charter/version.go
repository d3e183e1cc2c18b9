// Version command for the charter CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/charter/pkg/charter"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the charter version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("charter", charter.Version)
	},
}

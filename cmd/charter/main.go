// Package main provides the charter CLI, a file-first manager for
// hierarchical project documents backed by a rebuildable SQLite index.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "charter:", err)
		os.Exit(exitCode(err))
	}
}

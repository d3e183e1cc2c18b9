// Shared helpers for charter CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/pkg/types"
)

var (
	codeColor  = color.New(color.FgCyan, color.Bold)
	phaseColor = color.New(color.FgYellow)
	dimColor   = color.New(color.Faint)
	errColor   = color.New(color.FgRed)
)

// exitCode maps an error to the CLI exit code. Malformed input, unknown
// documents, and rejected operations are user errors; everything else is a
// system error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}

	var transitionErr *types.InvalidPhaseTransitionError
	var criteriaErr *types.ExitCriteriaNotMetError
	var validationErr *types.ValidationError
	switch {
	case errors.As(err, &transitionErr),
		errors.As(err, &criteriaErr),
		errors.As(err, &validationErr),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidDocumentType),
		errors.Is(err, types.ErrUnknownPhase),
		errors.Is(err, types.ErrMissingPhaseTag),
		errors.Is(err, types.ErrAlreadyArchived),
		errors.Is(err, types.ErrAlreadyExists),
		errors.Is(err, types.ErrInvalidShortCode),
		errors.Is(err, types.ErrInvalidParent),
		errors.Is(err, types.ErrWorkspaceNotFound),
		errors.Is(err, types.ErrCriterionNotFound):
		return exitUserError
	}
	return exitSysError
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// printRecordLine writes one document as a single aligned line.
func printRecordLine(rec *index.Record) {
	marker := " "
	if rec.Archived {
		marker = dimColor.Sprint("A")
	}
	fmt.Printf("%s %s  %-10s %-10s %s\n",
		marker,
		codeColor.Sprintf("%-14s", rec.ShortCode),
		rec.Type,
		phaseColor.Sprint(rec.Phase),
		rec.Title,
	)
}

// printRecord writes one document in full.
func printRecord(rec *index.Record) {
	fmt.Println(codeColor.Sprint(rec.ShortCode), rec.Title)
	fmt.Println("  type:    ", rec.Type)
	fmt.Println("  phase:   ", phaseColor.Sprint(rec.Phase))
	fmt.Println("  id:      ", rec.ID)
	fmt.Println("  file:    ", rec.Filepath)
	if rec.ParentID != "" {
		fmt.Println("  parent:  ", rec.ParentID)
	}
	if len(rec.BlockedBy) > 0 {
		fmt.Println("  blocked: ", strings.Join(rec.BlockedBy, ", "))
	}
	if rec.Archived {
		fmt.Println("  archived: true")
	}
	fmt.Println("  criteria:", criteriaLabel(rec.ExitCriteriaMet))
	fmt.Println("  updated: ", rec.UpdatedAt.Format("2006-01-02 15:04"))
}

func criteriaLabel(met bool) string {
	if met {
		return "met"
	}
	return "not met"
}

// warn prints a warning line to stderr.
func warn(msg string) {
	fmt.Fprintln(os.Stderr, errColor.Sprint("warning:"), msg)
}

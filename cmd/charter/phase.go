// Phase command transitions documents through their phase sequence.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/pkg/types"
)

var flagPhaseForce bool

var phaseCmd = &cobra.Command{
	Use:     "phase <ref> [target]",
	Aliases: []string{"transition"},
	Short:   "Transition a document to another phase",
	Long: `Phase moves a document to the target phase, or to its next sequential
phase when no target is given. Only the immediate next phase and declared
side transitions are legal; --force bypasses sequencing but the target must
still belong to the type's phase set.

Completing a strategy, initiative, or task requires its exit criteria
checklist to be fully checked, unless --force is given.

Example:
  charter phase PROJ-S-0001 design
  charter phase PROJ-T-0004
  charter phase PROJ-T-0004 completed --force`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}

		if len(args) == 2 {
			target, err := types.ParsePhase(args[1])
			if err != nil {
				return err
			}
			updated, err := svc.Transition(args[0], target, flagPhaseForce)
			if err != nil {
				return err
			}
			return reportPhase(updated)
		}

		updated, err := svc.TransitionNext(args[0], flagPhaseForce)
		if err != nil {
			return err
		}
		return reportPhase(updated)
	},
}

func init() {
	phaseCmd.Flags().BoolVar(&flagPhaseForce, "force", false, "bypass phase sequencing and the exit criteria gate")
}

func reportPhase(rec *index.Record) error {
	if flagJSON {
		return printJSON(rec)
	}
	fmt.Println(codeColor.Sprint(rec.ShortCode), "is now", phaseColor.Sprint(rec.Phase))
	return nil
}

// Package phases defines the per-type phase sequences and the legality of
// phase transitions. All functions are pure: legality is a function of
// (document type, current phase, requested phase) only.
package phases

import (
	"fmt"

	"github.com/mesh-intelligence/charter/pkg/types"
)

// sequences holds the ordered forward progression for each document type.
// Side states (task blocked, adr superseded) are not part of the sequence.
var sequences = map[types.DocumentType][]types.Phase{
	types.TypeVision: {
		types.PhaseDraft, types.PhaseReview, types.PhasePublished,
	},
	types.TypeStrategy: {
		types.PhaseShaping, types.PhaseDesign, types.PhaseReady,
		types.PhaseActive, types.PhaseCompleted,
	},
	types.TypeInitiative: {
		types.PhaseDiscovery, types.PhaseDesign, types.PhaseReady,
		types.PhaseDecompose, types.PhaseActive, types.PhaseCompleted,
	},
	types.TypeTask: {
		types.PhaseTodo, types.PhaseActive, types.PhaseCompleted,
	},
	types.TypeAdr: {
		types.PhaseDraft, types.PhaseDiscussion, types.PhaseDecided,
	},
}

// sideStates are phases reachable outside the forward sequence.
var sideStates = map[types.DocumentType][]types.Phase{
	types.TypeTask: {types.PhaseBlocked},
	types.TypeAdr:  {types.PhaseSuperseded},
}

type edge struct {
	from, to types.Phase
}

// sideTransitions declares the legal moves involving side states: a task can
// bounce between active and blocked, and an ADR can be superseded from any
// non-terminal phase.
var sideTransitions = map[types.DocumentType]map[edge]bool{
	types.TypeTask: {
		{types.PhaseActive, types.PhaseBlocked}: true,
		{types.PhaseBlocked, types.PhaseActive}: true,
	},
	types.TypeAdr: {
		{types.PhaseDraft, types.PhaseSuperseded}:      true,
		{types.PhaseDiscussion, types.PhaseSuperseded}: true,
	},
}

// gatedTypes must have their exit criteria complete before a terminal
// transition; the gate lives in the orchestration layer, not here.
var gatedTypes = map[types.DocumentType]bool{
	types.TypeStrategy:   true,
	types.TypeInitiative: true,
	types.TypeTask:       true,
}

// Sequence returns the ordered forward phase progression for t.
func Sequence(t types.DocumentType) []types.Phase {
	return sequences[t]
}

// Initial returns the phase a freshly created document of type t starts in.
func Initial(t types.DocumentType) types.Phase {
	return sequences[t][0]
}

// Member reports whether p belongs to t's phase set, including side states.
func Member(t types.DocumentType, p types.Phase) bool {
	for _, s := range sequences[t] {
		if s == p {
			return true
		}
	}
	for _, s := range sideStates[t] {
		if s == p {
			return true
		}
	}
	return false
}

// Validate returns an error when p is not in t's phase set. Used by forced
// transitions, which bypass sequencing but not membership.
func Validate(t types.DocumentType, p types.Phase) error {
	if !Member(t, p) {
		return fmt.Errorf("%w: %q is not a %s phase", types.ErrUnknownPhase, p, t)
	}
	return nil
}

// IsTerminal reports whether p ends t's lifecycle: the last phase of the
// sequence, or the superseded side state for ADRs.
func IsTerminal(t types.DocumentType, p types.Phase) bool {
	seq := sequences[t]
	if p == seq[len(seq)-1] {
		return true
	}
	return t == types.TypeAdr && p == types.PhaseSuperseded
}

// Gated reports whether terminal transitions for t require exit criteria to
// be complete.
func Gated(t types.DocumentType) bool {
	return gatedTypes[t]
}

// successor returns the phase directly after from in t's sequence.
func successor(t types.DocumentType, from types.Phase) (types.Phase, bool) {
	seq := sequences[t]
	for i, p := range seq {
		if p == from && i+1 < len(seq) {
			return seq[i+1], true
		}
	}
	return "", false
}

// CanTransition reports whether a document of type t may move from one phase
// to another: same phase (idempotent no-op), the immediate successor in the
// sequence, or a declared side transition. Everything else is denied.
func CanTransition(t types.DocumentType, from, to types.Phase) bool {
	if !Member(t, from) || !Member(t, to) {
		return false
	}
	if from == to {
		return true
	}
	if succ, ok := successor(t, from); ok && succ == to {
		return true
	}
	return sideTransitions[t][edge{from, to}]
}

// Next returns the default forward transition from the given phase. A blocked
// task advances back to active; terminal phases have no next.
func Next(t types.DocumentType, from types.Phase) (types.Phase, bool) {
	if t == types.TypeTask && from == types.PhaseBlocked {
		return types.PhaseActive, true
	}
	return successor(t, from)
}

package types

import (
	"fmt"
	"strings"
)

// Phase is a lifecycle stage within a document type's sequence. The phase is
// encoded as a "#phase/<name>" tag in the file's frontmatter; the database
// column is a denormalized copy.
type Phase string

// Phase vocabulary accepted at the boundary. Which phases apply to which
// document type is defined in the phases package.
const (
	PhaseDraft      Phase = "draft"
	PhaseReview     Phase = "review"
	PhasePublished  Phase = "published"
	PhaseShaping    Phase = "shaping"
	PhaseDesign     Phase = "design"
	PhaseReady      Phase = "ready"
	PhaseActive     Phase = "active"
	PhaseCompleted  Phase = "completed"
	PhaseDiscovery  Phase = "discovery"
	PhaseDecompose  Phase = "decompose"
	PhaseTodo       Phase = "todo"
	PhaseBlocked    Phase = "blocked"
	PhaseDiscussion Phase = "discussion"
	PhaseDecided    Phase = "decided"
	PhaseSuperseded Phase = "superseded"
)

// knownPhases is the set of recognized phase values.
var knownPhases = map[Phase]bool{
	PhaseDraft:      true,
	PhaseReview:     true,
	PhasePublished:  true,
	PhaseShaping:    true,
	PhaseDesign:     true,
	PhaseReady:      true,
	PhaseActive:     true,
	PhaseCompleted:  true,
	PhaseDiscovery:  true,
	PhaseDecompose:  true,
	PhaseTodo:       true,
	PhaseBlocked:    true,
	PhaseDiscussion: true,
	PhaseDecided:    true,
	PhaseSuperseded: true,
}

// ParsePhase parses a phase string case-insensitively. Any string outside the
// known vocabulary returns ErrUnknownPhase.
func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	if !knownPhases[p] {
		return "", fmt.Errorf("%w: %q", ErrUnknownPhase, s)
	}
	return p, nil
}

// Known reports whether p is in the accepted phase vocabulary.
func (p Phase) Known() bool {
	return knownPhases[p]
}

func (p Phase) String() string {
	return string(p)
}

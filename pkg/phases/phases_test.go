package phases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/charter/pkg/types"
)

func TestInitial(t *testing.T) {
	assert.Equal(t, types.PhaseDraft, Initial(types.TypeVision))
	assert.Equal(t, types.PhaseShaping, Initial(types.TypeStrategy))
	assert.Equal(t, types.PhaseDiscovery, Initial(types.TypeInitiative))
	assert.Equal(t, types.PhaseTodo, Initial(types.TypeTask))
	assert.Equal(t, types.PhaseDraft, Initial(types.TypeAdr))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		docType types.DocumentType
		from    types.Phase
		to      types.Phase
		want    bool
	}{
		// Forward steps.
		{"vision draft to review", types.TypeVision, types.PhaseDraft, types.PhaseReview, true},
		{"vision review to published", types.TypeVision, types.PhaseReview, types.PhasePublished, true},
		{"strategy shaping to design", types.TypeStrategy, types.PhaseShaping, types.PhaseDesign, true},
		{"strategy active to completed", types.TypeStrategy, types.PhaseActive, types.PhaseCompleted, true},
		{"initiative ready to decompose", types.TypeInitiative, types.PhaseReady, types.PhaseDecompose, true},
		{"task todo to active", types.TypeTask, types.PhaseTodo, types.PhaseActive, true},
		{"adr discussion to decided", types.TypeAdr, types.PhaseDiscussion, types.PhaseDecided, true},

		// Same phase is an idempotent no-op.
		{"same phase", types.TypeTask, types.PhaseActive, types.PhaseActive, true},

		// Side transitions.
		{"task active to blocked", types.TypeTask, types.PhaseActive, types.PhaseBlocked, true},
		{"task blocked to active", types.TypeTask, types.PhaseBlocked, types.PhaseActive, true},
		{"adr draft to superseded", types.TypeAdr, types.PhaseDraft, types.PhaseSuperseded, true},
		{"adr discussion to superseded", types.TypeAdr, types.PhaseDiscussion, types.PhaseSuperseded, true},

		// Skipping, reversing, and foreign phases are denied.
		{"skip a phase", types.TypeStrategy, types.PhaseShaping, types.PhaseReady, false},
		{"skip to terminal", types.TypeStrategy, types.PhaseShaping, types.PhaseActive, false},
		{"backwards", types.TypeStrategy, types.PhaseDesign, types.PhaseShaping, false},
		{"task todo to blocked", types.TypeTask, types.PhaseTodo, types.PhaseBlocked, false},
		{"task completed to blocked", types.TypeTask, types.PhaseCompleted, types.PhaseBlocked, false},
		{"adr decided to superseded", types.TypeAdr, types.PhaseDecided, types.PhaseSuperseded, false},
		{"phase from another type", types.TypeVision, types.PhaseDraft, types.PhaseShaping, false},
		{"unknown phase", types.TypeTask, types.PhaseTodo, types.Phase("galloping"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.docType, tt.from, tt.to))
		})
	}
}

func TestSequenceWalk(t *testing.T) {
	// Every consecutive pair of every sequence must be a legal transition,
	// and nothing follows the last phase.
	for _, docType := range types.DocumentTypes {
		seq := Sequence(docType)
		require.NotEmpty(t, seq)

		for i := 0; i+1 < len(seq); i++ {
			assert.True(t, CanTransition(docType, seq[i], seq[i+1]),
				"%s: %s -> %s", docType, seq[i], seq[i+1])
		}

		last := seq[len(seq)-1]
		assert.True(t, IsTerminal(docType, last))
		_, ok := Next(docType, last)
		assert.False(t, ok, "%s: terminal phase has no next", docType)
	}
}

func TestNext(t *testing.T) {
	next, ok := Next(types.TypeTask, types.PhaseTodo)
	require.True(t, ok)
	assert.Equal(t, types.PhaseActive, next)

	// A blocked task resumes to active.
	next, ok = Next(types.TypeTask, types.PhaseBlocked)
	require.True(t, ok)
	assert.Equal(t, types.PhaseActive, next)

	_, ok = Next(types.TypeAdr, types.PhaseSuperseded)
	assert.False(t, ok)
	assert.True(t, IsTerminal(types.TypeAdr, types.PhaseSuperseded))
}

func TestMemberAndValidate(t *testing.T) {
	assert.True(t, Member(types.TypeTask, types.PhaseBlocked))
	assert.True(t, Member(types.TypeAdr, types.PhaseSuperseded))
	assert.False(t, Member(types.TypeVision, types.PhaseActive))

	assert.NoError(t, Validate(types.TypeTask, types.PhaseBlocked))
	assert.ErrorIs(t, Validate(types.TypeVision, types.PhaseActive), types.ErrUnknownPhase)
}

func TestGated(t *testing.T) {
	assert.True(t, Gated(types.TypeStrategy))
	assert.True(t, Gated(types.TypeInitiative))
	assert.True(t, Gated(types.TypeTask))
	assert.False(t, Gated(types.TypeVision))
	assert.False(t, Gated(types.TypeAdr))
}

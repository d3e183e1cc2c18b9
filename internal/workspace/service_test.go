package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/internal/markdown"
	"github.com/mesh-intelligence/charter/internal/paths"
	"github.com/mesh-intelligence/charter/pkg/types"
)

func initWorkspace(t *testing.T) *Service {
	t.Helper()
	svc, result, err := Init(t.TempDir(), InitOptions{ProjectName: "Demo Project", Prefix: "DEMO"})
	require.NoError(t, err)
	require.True(t, result.Created)
	require.Equal(t, "DEMO", result.Prefix)
	return svc
}

func TestInitCreatesWorkspace(t *testing.T) {
	svc := initWorkspace(t)

	// The vision document exists, carries a code, and starts in draft.
	vision, err := svc.Get("DEMO-V-0001")
	require.NoError(t, err)
	assert.Equal(t, types.TypeVision, vision.Type)
	assert.Equal(t, types.PhaseDraft, vision.Phase)
	assert.Equal(t, "Demo Project", vision.Title)
	assert.Equal(t, paths.VisionFileName, vision.Filepath)

	for _, dir := range append(paths.DocumentDirs(), paths.ArchivedDirName) {
		info, err := os.Stat(filepath.Join(svc.Root, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	_, err = os.Stat(filepath.Join(svc.Root, paths.ConfigFileName))
	require.NoError(t, err)
}

func TestInitIsIdempotent(t *testing.T) {
	base := t.TempDir()
	_, first, err := Init(base, InitOptions{ProjectName: "Demo Project"})
	require.NoError(t, err)
	assert.True(t, first.Created)

	svc, second, err := Init(base, InitOptions{ProjectName: "Renamed"})
	require.NoError(t, err)
	assert.False(t, second.Created)

	// The original vision survives a second init.
	recs, err := svc.List(index.Filter{Type: types.TypeVision})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Demo Project", recs[0].Title)
}

func TestInitDerivesPrefix(t *testing.T) {
	_, result, err := Init(t.TempDir(), InitOptions{ProjectName: "charter tools"})
	require.NoError(t, err)
	assert.Equal(t, "CHARTE", result.Prefix)

	_, err = os.Stat(result.Root)
	require.NoError(t, err)
}

func TestCreateStrategy(t *testing.T) {
	svc := initWorkspace(t)

	rec, err := svc.Create(CreateOptions{Type: types.TypeStrategy, Title: "Expand into EU"})
	require.NoError(t, err)

	assert.Equal(t, "DEMO-S-0001", rec.ShortCode)
	assert.Equal(t, filepath.Join("strategy", "expand-into-eu", "strategy.md"), rec.Filepath)
	assert.Equal(t, types.PhaseShaping, rec.Phase)

	// A strategy without an explicit parent attaches to the vision.
	assert.Equal(t, "demo-project", rec.ParentID)

	doc, err := markdown.ReadFile(filepath.Join(svc.Root, rec.Filepath))
	require.NoError(t, err)
	phase, err := doc.Phase()
	require.NoError(t, err)
	assert.Equal(t, types.PhaseShaping, phase)

	// Duplicate titles collide on the slug path.
	_, err = svc.Create(CreateOptions{Type: types.TypeStrategy, Title: "Expand into EU"})
	assert.ErrorIs(t, err, types.ErrAlreadyExists)
}

func TestCreateValidatesParentType(t *testing.T) {
	svc := initWorkspace(t)

	strategy, err := svc.Create(CreateOptions{Type: types.TypeStrategy, Title: "Top Strategy"})
	require.NoError(t, err)

	// A task's parent must be an initiative, not a strategy.
	_, err = svc.Create(CreateOptions{Type: types.TypeTask, Title: "Misparented", Parent: strategy.ShortCode})
	assert.ErrorIs(t, err, types.ErrInvalidParent)

	// ADRs take no parent at all.
	_, err = svc.Create(CreateOptions{Type: types.TypeAdr, Title: "Use SQLite", Parent: strategy.ShortCode})
	assert.ErrorIs(t, err, types.ErrInvalidParent)

	initiative, err := svc.Create(CreateOptions{Type: types.TypeInitiative, Title: "Billing", Parent: strategy.ShortCode})
	require.NoError(t, err)

	task, err := svc.Create(CreateOptions{Type: types.TypeTask, Title: "Wire It Up", Parent: initiative.ShortCode})
	require.NoError(t, err)
	assert.Equal(t, "billing", task.ParentID)
}

func TestTransitionSequence(t *testing.T) {
	svc := initWorkspace(t)
	strategy, err := svc.Create(CreateOptions{Type: types.TypeStrategy, Title: "Expand into EU"})
	require.NoError(t, err)

	rec, err := svc.Transition(strategy.ShortCode, types.PhaseDesign, false)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseDesign, rec.Phase)

	// Skipping ahead is rejected with the from and to phases named.
	_, err = svc.Transition(strategy.ShortCode, types.PhaseActive, false)
	var transitionErr *types.InvalidPhaseTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, types.PhaseDesign, transitionErr.From)
	assert.Equal(t, types.PhaseActive, transitionErr.To)

	// A terminal skip with an unmet checklist reports as a criteria
	// failure, since the gate runs before sequencing.
	_, err = svc.Transition(strategy.ShortCode, types.PhaseCompleted, false)
	var criteriaErr *types.ExitCriteriaNotMetError
	assert.ErrorAs(t, err, &criteriaErr)

	// Same phase is a no-op success.
	rec, err = svc.Transition(strategy.ShortCode, types.PhaseDesign, false)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseDesign, rec.Phase)

	// A phase from another type's set is rejected even with force.
	_, err = svc.Transition(strategy.ShortCode, types.PhaseDecided, true)
	assert.ErrorIs(t, err, types.ErrUnknownPhase)
}

func TestTransitionNextAndBlocked(t *testing.T) {
	svc := initWorkspace(t)
	initiative, err := svc.Create(CreateOptions{Type: types.TypeInitiative, Title: "Billing"})
	require.NoError(t, err)
	task, err := svc.Create(CreateOptions{Type: types.TypeTask, Title: "Wire It Up", Parent: initiative.ShortCode})
	require.NoError(t, err)

	rec, err := svc.TransitionNext(task.ShortCode, false)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseActive, rec.Phase)

	rec, err = svc.Transition(task.ShortCode, types.PhaseBlocked, false)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseBlocked, rec.Phase)

	// Next from blocked resumes to active.
	rec, err = svc.TransitionNext(task.ShortCode, false)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseActive, rec.Phase)
}

func TestCompletionGate(t *testing.T) {
	svc := initWorkspace(t)
	initiative, err := svc.Create(CreateOptions{Type: types.TypeInitiative, Title: "Billing"})
	require.NoError(t, err)
	task, err := svc.Create(CreateOptions{Type: types.TypeTask, Title: "Wire It Up", Parent: initiative.ShortCode})
	require.NoError(t, err)

	_, err = svc.TransitionNext(task.ShortCode, false)
	require.NoError(t, err)

	// The template checklist item is unchecked, so completion is gated.
	_, err = svc.Transition(task.ShortCode, types.PhaseCompleted, false)
	var criteriaErr *types.ExitCriteriaNotMetError
	require.ErrorAs(t, err, &criteriaErr)
	assert.Equal(t, 0, criteriaErr.Completed)
	assert.Equal(t, 1, criteriaErr.Total)
	require.Len(t, criteriaErr.Missing, 1)

	rec, err := svc.CheckCriterion(task.ShortCode, criteriaErr.Missing[0], true)
	require.NoError(t, err)
	assert.True(t, rec.ExitCriteriaMet)

	rec, err = svc.Transition(task.ShortCode, types.PhaseCompleted, false)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseCompleted, rec.Phase)
}

func TestCompletionGateForce(t *testing.T) {
	svc := initWorkspace(t)
	initiative, err := svc.Create(CreateOptions{Type: types.TypeInitiative, Title: "Billing"})
	require.NoError(t, err)
	task, err := svc.Create(CreateOptions{Type: types.TypeTask, Title: "Wire It Up", Parent: initiative.ShortCode})
	require.NoError(t, err)

	// Force bypasses both sequencing and the gate.
	rec, err := svc.Transition(task.ShortCode, types.PhaseCompleted, true)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseCompleted, rec.Phase)
}

func TestUpdateSection(t *testing.T) {
	svc := initWorkspace(t)
	strategy, err := svc.Create(CreateOptions{Type: types.TypeStrategy, Title: "Expand into EU"})
	require.NoError(t, err)

	rec, err := svc.UpdateSection(strategy.ShortCode, "Approach", "Start with Ireland.", false)
	require.NoError(t, err)
	assert.Contains(t, rec.Content, "Start with Ireland.")

	doc, err := markdown.ReadFile(filepath.Join(svc.Root, rec.Filepath))
	require.NoError(t, err)
	assert.Contains(t, doc.Body, "Start with Ireland.")
}

func TestArchiveCascade(t *testing.T) {
	svc := initWorkspace(t)
	strategy, err := svc.Create(CreateOptions{Type: types.TypeStrategy, Title: "Expand into EU"})
	require.NoError(t, err)
	initiative, err := svc.Create(CreateOptions{Type: types.TypeInitiative, Title: "Billing", Parent: strategy.ShortCode})
	require.NoError(t, err)
	task, err := svc.Create(CreateOptions{Type: types.TypeTask, Title: "Wire It Up", Parent: initiative.ShortCode})
	require.NoError(t, err)

	result, err := svc.Archive(strategy.ShortCode)
	require.NoError(t, err)
	assert.Empty(t, result.Failed)
	assert.Len(t, result.Archived, 3, "strategy plus two descendants")

	// Files moved into the mirror; originals gone.
	for _, rel := range []string{strategy.Filepath, initiative.Filepath, task.Filepath} {
		_, err := os.Stat(filepath.Join(svc.Root, rel))
		assert.True(t, os.IsNotExist(err), "%s should be moved", rel)
		_, err = os.Stat(filepath.Join(svc.Root, paths.ArchivedPath(rel)))
		assert.NoError(t, err)
	}

	// Rows are archived, phases untouched, and edges still resolve.
	archived, err := svc.Get(task.ShortCode)
	require.NoError(t, err)
	assert.True(t, archived.Archived)
	assert.Equal(t, types.PhaseTodo, archived.Phase)

	children, err := svc.Children(strategy.ShortCode)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "billing", children[0].ID)

	// The vision was not part of the subtree.
	vision, err := svc.Get("DEMO-V-0001")
	require.NoError(t, err)
	assert.False(t, vision.Archived)

	// Archiving again is rejected.
	_, err = svc.Archive(strategy.ShortCode)
	assert.ErrorIs(t, err, types.ErrAlreadyArchived)
}

func TestDeletePrunesEdges(t *testing.T) {
	svc := initWorkspace(t)
	initiative, err := svc.Create(CreateOptions{Type: types.TypeInitiative, Title: "Billing"})
	require.NoError(t, err)
	task, err := svc.Create(CreateOptions{Type: types.TypeTask, Title: "Wire It Up", Parent: initiative.ShortCode})
	require.NoError(t, err)

	rel, err := svc.Delete(initiative.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, initiative.Filepath, rel)

	_, err = svc.Get(initiative.ShortCode)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// The child survives with a dangling parent reference and no edge.
	orphan, err := svc.Get(task.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "billing", orphan.ParentID)
}

func TestIndexReconstruction(t *testing.T) {
	svc := initWorkspace(t)
	strategy, err := svc.Create(CreateOptions{Type: types.TypeStrategy, Title: "Expand into EU"})
	require.NoError(t, err)
	_, err = svc.Transition(strategy.ShortCode, types.PhaseDesign, false)
	require.NoError(t, err)

	// Losing the database entirely is recoverable: the next operation
	// rebuilds it from the files with identical codes and phases.
	require.NoError(t, os.Remove(filepath.Join(svc.Root, paths.DBFileName)))

	rec, err := svc.Get(strategy.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseDesign, rec.Phase)
	assert.Equal(t, strategy.Filepath, rec.Filepath)

	// Counters continue past recovered codes.
	next, err := svc.Create(CreateOptions{Type: types.TypeStrategy, Title: "Another Push"})
	require.NoError(t, err)
	assert.Equal(t, "DEMO-S-0002", next.ShortCode)
}

func TestValidateReportsProblems(t *testing.T) {
	svc := initWorkspace(t)
	_, err := svc.Create(CreateOptions{Type: types.TypeTask, Title: "Fine Task"})
	require.NoError(t, err)

	result, err := svc.Validate()
	require.NoError(t, err)
	assert.True(t, result.OK())

	// Drop in a file with a phase outside its type's set.
	bad := markdown.NewDocument(types.TypeTask, "Bad Phase", "", types.ShortCode{Prefix: "DEMO", Type: types.TypeTask, Number: 99})
	bad.SetPhase(types.PhaseShaping)
	require.NoError(t, markdown.WriteFile(filepath.Join(svc.Root, "task", "bad-phase.md"), bad))

	result, err = svc.Validate()
	require.NoError(t, err)
	assert.False(t, result.OK())
	require.Len(t, result.Documents, 1)
	assert.Equal(t, filepath.Join("task", "bad-phase.md"), result.Documents[0].Filepath)
}

func TestSearch(t *testing.T) {
	svc := initWorkspace(t)
	_, err := svc.Create(CreateOptions{Type: types.TypeAdr, Title: "Use SQLite for the index"})
	require.NoError(t, err)

	hits, err := svc.Search("sqlite")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, types.TypeAdr, hits[0].Type)
}

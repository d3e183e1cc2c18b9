package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/internal/markdown"
	"github.com/mesh-intelligence/charter/internal/sync"
	"github.com/mesh-intelligence/charter/pkg/phases"
	"github.com/mesh-intelligence/charter/pkg/types"
)

// Transition moves a document to the target phase. force bypasses phase
// sequencing and the exit criteria gate, but the target must still belong to
// the type's phase set. Transitioning to the current phase is a no-op.
func (s *Service) Transition(ref string, target types.Phase, force bool) (*index.Record, error) {
	return s.transition(ref, force, func(doc *types.Document, from types.Phase) (types.Phase, error) {
		return target, nil
	})
}

// TransitionNext advances a document to its next sequential phase. A
// blocked task advances back to active.
func (s *Service) TransitionNext(ref string, force bool) (*index.Record, error) {
	return s.transition(ref, force, func(doc *types.Document, from types.Phase) (types.Phase, error) {
		next, ok := phases.Next(doc.Type, from)
		if !ok {
			return "", fmt.Errorf("%s %s is already in its final phase %s", doc.Type, doc.ShortCode, from)
		}
		return next, nil
	})
}

func (s *Service) transition(ref string, force bool, pick func(*types.Document, types.Phase) (types.Phase, error)) (*index.Record, error) {
	var result *index.Record
	err := s.withStore(func(store *index.Store) error {
		rec, err := resolve(store, ref)
		if err != nil {
			return err
		}

		// The file, not the cached row, decides the current phase.
		abs := filepath.Join(s.Root, rec.Filepath)
		doc, err := markdown.ReadFile(abs)
		if err != nil {
			return err
		}
		from, err := doc.Phase()
		if err != nil {
			return err
		}

		target, err := pick(doc, from)
		if err != nil {
			return err
		}
		if err := phases.Validate(doc.Type, target); err != nil {
			return fmt.Errorf("%s %s: %w", doc.Type, doc.ShortCode, err)
		}
		if target == from {
			result = rec
			return nil
		}

		// The completion gate is checked before phase sequencing so an
		// unmet checklist reports as a criteria failure, not a bad
		// transition.
		if !force && phases.Gated(doc.Type) && phases.IsTerminal(doc.Type, target) {
			met, done, total, missing := markdown.CriteriaStatus(doc.Body)
			if !met {
				return &types.ExitCriteriaNotMetError{Completed: done, Total: total, Missing: missing}
			}
		}

		if !force && !phases.CanTransition(doc.Type, from, target) {
			return &types.InvalidPhaseTransitionError{Type: doc.Type, From: from, To: target}
		}

		doc.SetPhase(target)
		doc.Touch()
		if err := markdown.WriteFile(abs, doc); err != nil {
			return fmt.Errorf("writing %s: %w", rec.Filepath, err)
		}

		if _, err := sync.New(s.Root, store).Run(); err != nil {
			return err
		}
		result, err = store.Get(rec.Filepath)
		return err
	})
	return result, err
}

package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/internal/markdown"
	"github.com/mesh-intelligence/charter/internal/sync"
)

// UpdateSection replaces (or, with appendMode, appends to) the named H2
// section of a document's body. A missing section is added at the end.
func (s *Service) UpdateSection(ref, heading, content string, appendMode bool) (*index.Record, error) {
	return s.rewrite(ref, func(body string) (string, error) {
		return markdown.UpdateSection(body, heading, content, appendMode), nil
	})
}

// CheckCriterion marks one exit criteria checklist item done or not done,
// matched by its exact text.
func (s *Service) CheckCriterion(ref, text string, done bool) (*index.Record, error) {
	return s.rewrite(ref, func(body string) (string, error) {
		return markdown.SetCriterion(body, text, done)
	})
}

// rewrite loads a document's file, applies edit to its body, writes it back,
// and resynchronizes.
func (s *Service) rewrite(ref string, edit func(body string) (string, error)) (*index.Record, error) {
	var result *index.Record
	err := s.withStore(func(store *index.Store) error {
		rec, err := resolve(store, ref)
		if err != nil {
			return err
		}
		abs := filepath.Join(s.Root, rec.Filepath)
		doc, err := markdown.ReadFile(abs)
		if err != nil {
			return err
		}

		body, err := edit(doc.Body)
		if err != nil {
			return err
		}
		doc.Body = body
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

// Delete removes a document's file. Children are not touched; their parent
// references go dangling and the following synchronization pass prunes the
// edges.
func (s *Service) Delete(ref string) (string, error) {
	var deleted string
	err := s.withStore(func(store *index.Store) error {
		rec, err := resolve(store, ref)
		if err != nil {
			return err
		}
		abs := filepath.Join(s.Root, rec.Filepath)
		if err := os.Remove(abs); err != nil {
			return fmt.Errorf("deleting %s: %w", rec.Filepath, err)
		}
		os.Remove(filepath.Dir(abs))
		deleted = rec.Filepath

		_, err = sync.New(s.Root, store).Run()
		return err
	})
	return deleted, err
}

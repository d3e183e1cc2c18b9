package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/internal/markdown"
	"github.com/mesh-intelligence/charter/internal/paths"
	"github.com/mesh-intelligence/charter/internal/sync"
	"github.com/mesh-intelligence/charter/pkg/types"
)

// CreateOptions describes a document to create.
type CreateOptions struct {
	Type  types.DocumentType
	Title string
	// Parent is a short code or slug id. Optional; when the type has a
	// parent type and none is given, a strategy attaches to the vision
	// document and other types are left unparented.
	Parent string
}

// Create writes a new document from the type's template, assigns it a short
// code, and returns the indexed record.
func (s *Service) Create(opts CreateOptions) (*index.Record, error) {
	if !opts.Type.Valid() {
		return nil, fmt.Errorf("document type %q: %w", string(opts.Type), types.ErrInvalidDocumentType)
	}
	if strings.TrimSpace(opts.Title) == "" {
		return nil, errors.New("document title must not be empty")
	}

	var created *index.Record
	err := s.withStore(func(store *index.Store) error {
		parentID, err := resolveParent(store, opts)
		if err != nil {
			return err
		}

		slug := types.Slug(opts.Title)
		rel := paths.DocumentPath(opts.Type, slug)
		abs := filepath.Join(s.Root, rel)
		if _, err := os.Stat(abs); err == nil {
			return fmt.Errorf("%s %q: %w", opts.Type, slug, types.ErrAlreadyExists)
		}

		code, err := store.NextShortCode(opts.Type)
		if err != nil {
			return err
		}
		doc := markdown.NewDocument(opts.Type, opts.Title, parentID, code)
		if err := markdown.WriteFile(abs, doc); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}

		if _, err := sync.New(s.Root, store).Run(); err != nil {
			return err
		}
		created, err = store.Get(rel)
		return err
	})
	return created, err
}

// resolveParent turns the parent reference into a slug id, enforcing the
// type hierarchy.
func resolveParent(store *index.Store, opts CreateOptions) (string, error) {
	parentType, hasParent := opts.Type.ParentType()
	if !hasParent {
		if opts.Parent != "" {
			return "", fmt.Errorf("%s documents take no parent: %w", opts.Type, types.ErrInvalidParent)
		}
		return "", nil
	}

	if opts.Parent == "" {
		// A strategy without an explicit parent belongs to the vision.
		if opts.Type != types.TypeStrategy {
			return "", nil
		}
		live := false
		recs, err := store.List(index.Filter{Type: types.TypeVision, Archived: &live})
		if err != nil || len(recs) == 0 {
			return "", err
		}
		return recs[0].ID, nil
	}

	parent, err := resolve(store, opts.Parent)
	if err != nil {
		return "", err
	}
	if parent.Type != parentType {
		return "", fmt.Errorf("%s parent must be a %s, got %s %s: %w",
			opts.Type, parentType, parent.Type, parent.ShortCode, types.ErrInvalidParent)
	}
	return parent.ID, nil
}

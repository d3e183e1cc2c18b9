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

// ValidateResult collects every problem found in the workspace. Warnings
// come from the synchronization pass (unreadable or unparseable files);
// Documents lists per-file problems in otherwise indexable documents.
type ValidateResult struct {
	Warnings  []string
	Documents []*types.ValidationError
}

// OK reports whether the workspace is fully valid.
func (r *ValidateResult) OK() bool {
	return len(r.Warnings) == 0 && len(r.Documents) == 0
}

// Validate synchronizes the workspace and checks every document: parseable
// frontmatter, a phase belonging to the type's phase set, a well-formed
// short code, and a parent of the expected type.
func (s *Service) Validate() (*ValidateResult, error) {
	result := &ValidateResult{}
	err := s.withStore(func(store *index.Store) error {
		syncResult, err := sync.New(s.Root, store).Run()
		if err != nil {
			return err
		}
		result.Warnings = syncResult.Warnings

		recs, err := store.List(index.Filter{})
		if err != nil {
			return err
		}

		byRef := make(map[string]*index.Record, len(recs)*2)
		for _, rec := range recs {
			byRef[rec.ID] = rec
			byRef[rec.ShortCode] = rec
		}

		for _, rec := range recs {
			problems := s.checkDocument(rec, byRef)
			if len(problems) > 0 {
				result.Documents = append(result.Documents, &types.ValidationError{
					Filepath: rec.Filepath,
					Problems: problems,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) checkDocument(rec *index.Record, byRef map[string]*index.Record) []string {
	var problems []string

	doc, err := markdown.ReadFile(filepath.Join(s.Root, rec.Filepath))
	if err != nil {
		return []string{err.Error()}
	}

	phase, err := doc.Phase()
	if err != nil {
		problems = append(problems, err.Error())
	} else if err := phases.Validate(doc.Type, phase); err != nil {
		problems = append(problems, err.Error())
	}

	if !types.ValidShortCode(doc.ShortCode) {
		problems = append(problems, fmt.Sprintf("malformed short code %q", doc.ShortCode))
	}

	if doc.ParentID != "" {
		parentType, hasParent := doc.Type.ParentType()
		parent, ok := byRef[doc.ParentID]
		switch {
		case !hasParent:
			problems = append(problems, fmt.Sprintf("%s documents take no parent", doc.Type))
		case !ok:
			problems = append(problems, fmt.Sprintf("parent %q not found", doc.ParentID))
		case parent.Type != parentType:
			problems = append(problems, fmt.Sprintf("parent %q is a %s, expected %s", doc.ParentID, parent.Type, parentType))
		}
	}

	for _, blocker := range doc.BlockedBy {
		if _, ok := byRef[blocker]; !ok {
			problems = append(problems, fmt.Sprintf("blocker %q not found", blocker))
		}
	}

	return problems
}

package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/internal/markdown"
	"github.com/mesh-intelligence/charter/internal/paths"
	"github.com/mesh-intelligence/charter/internal/sync"
	"github.com/mesh-intelligence/charter/pkg/types"
)

// ArchiveResult reports the outcome of an archive cascade. Paths are the
// pre-archive workspace-relative paths.
type ArchiveResult struct {
	Archived []string
	Failed   []ArchiveFailure
}

// ArchiveFailure records one document the cascade could not move. Documents
// already moved stay archived; there is no rollback.
type ArchiveFailure struct {
	Filepath string
	Reason   string
}

// Archive moves a document and all of its descendants into the archived/
// mirror, marking each as archived. Phases and content are untouched.
func (s *Service) Archive(ref string) (*ArchiveResult, error) {
	result := &ArchiveResult{}
	err := s.withStore(func(store *index.Store) error {
		rec, err := resolve(store, ref)
		if err != nil {
			return err
		}
		if rec.Archived {
			return fmt.Errorf("%s %s: %w", rec.Type, rec.ShortCode, types.ErrAlreadyArchived)
		}

		subtree, err := collectSubtree(store, rec)
		if err != nil {
			return err
		}

		for _, node := range subtree {
			if err := s.archiveFile(node.Filepath); err != nil {
				result.Failed = append(result.Failed, ArchiveFailure{Filepath: node.Filepath, Reason: err.Error()})
				continue
			}
			result.Archived = append(result.Archived, node.Filepath)
		}

		_, err = sync.New(s.Root, store).Run()
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// collectSubtree walks parent edges breadth first from root, skipping nodes
// already archived.
func collectSubtree(store *index.Store, root *index.Record) ([]*index.Record, error) {
	var subtree []*index.Record
	queue := []*index.Record{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node.Archived {
			continue
		}
		subtree = append(subtree, node)

		children, err := store.Children(node.ID)
		if err != nil {
			return nil, err
		}
		queue = append(queue, children...)
	}
	return subtree, nil
}

// archiveFile rewrites one file with archived set and relocates it under the
// archived/ mirror at the same relative path.
func (s *Service) archiveFile(rel string) error {
	abs := filepath.Join(s.Root, rel)
	doc, err := markdown.ReadFile(abs)
	if err != nil {
		return err
	}
	doc.Archived = true
	doc.Touch()

	dest := filepath.Join(s.Root, paths.ArchivedPath(rel))
	if err := markdown.WriteFile(dest, doc); err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return err
	}
	// Strategy and initiative files live in their own directory; drop it
	// once empty. Non-empty directories are left alone.
	os.Remove(filepath.Dir(abs))
	return nil
}

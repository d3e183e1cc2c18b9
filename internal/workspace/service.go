// Package workspace is the high level operations layer. Every mutating
// operation edits the markdown tree first and then runs a synchronization
// pass before returning, so callers never observe an index that lags the
// files.
package workspace

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/internal/paths"
	"github.com/mesh-intelligence/charter/internal/sync"
	"github.com/mesh-intelligence/charter/pkg/types"
)

// Service operates on one workspace. Root is the workspace directory.
type Service struct {
	Root string
}

// Open locates the workspace containing start and returns a service over it.
func Open(start string) (*Service, error) {
	root, err := paths.Detect(start)
	if err != nil {
		return nil, err
	}
	return &Service{Root: root}, nil
}

// Sync runs one synchronization pass against the index store.
func (s *Service) Sync() (*sync.Result, error) {
	var result *sync.Result
	err := s.withStore(func(store *index.Store) error {
		var err error
		result, err = sync.New(s.Root, store).Run()
		return err
	})
	return result, err
}

// withStore opens the store, resynchronizes it when it had to be rebuilt,
// and runs fn against it. The store is closed when fn returns.
func (s *Service) withStore(fn func(store *index.Store) error) error {
	store, rebuilt, err := sync.OpenStore(s.Root)
	if err != nil {
		return err
	}
	defer store.Close()
	if rebuilt {
		if _, err := sync.New(s.Root, store).Run(); err != nil {
			return fmt.Errorf("rebuilding index: %w", err)
		}
	}
	return fn(store)
}

// resolve finds a document by short code first and slug id second.
func resolve(store *index.Store, ref string) (*index.Record, error) {
	if types.ValidShortCode(ref) {
		if rec, err := store.GetByShortCode(ref); err == nil {
			return rec, nil
		} else if !errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
	}
	rec, err := store.GetByID(ref)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("document %q: %w", ref, types.ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

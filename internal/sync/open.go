package sync

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/internal/paths"
)

// OpenStore opens the workspace's index store, recreating it from scratch
// when the database file is missing or fails its integrity probe. rebuilt
// reports whether a fresh database was created; the caller should run a
// synchronization pass when it is true.
func OpenStore(root string) (store *index.Store, rebuilt bool, err error) {
	dbPath := filepath.Join(root, paths.DBFileName)

	if _, statErr := os.Stat(dbPath); os.IsNotExist(statErr) {
		store, err = index.Open(dbPath)
		return store, true, err
	}

	store, err = index.Open(dbPath)
	if err == nil {
		if probeErr := store.Probe(); probeErr == nil {
			return store, false, nil
		}
		store.Close()
	}

	// The cache is disposable; a corrupt file is removed and rebuilt from
	// the markdown tree.
	if err := os.Remove(dbPath); err != nil {
		return nil, false, fmt.Errorf("removing corrupt index %s: %w", dbPath, err)
	}
	store, err = index.Open(dbPath)
	return store, true, err
}

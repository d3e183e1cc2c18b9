// Package paths resolves workspace locations and the directory conventions
// mapping document types to file paths. The workspace root is always threaded
// through explicitly; nothing here depends on the process working directory
// except Detect, which takes its starting point as a parameter.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/charter/pkg/types"
)

// Workspace layout names.
const (
	WorkspaceDirName = ".charter"
	DBFileName       = "charter.db"
	ConfigFileName   = "config.yaml"
	VisionFileName   = "vision.md"
	ArchivedDirName  = "archived"
)

// EnvWorkspace overrides workspace detection when set.
const EnvWorkspace = "CHARTER_WORKSPACE"

// typeDirs maps non-vision document types to their subdirectory under the
// workspace root.
var typeDirs = map[types.DocumentType]string{
	types.TypeStrategy:   "strategy",
	types.TypeInitiative: "initiative",
	types.TypeTask:       "task",
	types.TypeAdr:        "adr",
}

// DocumentDirs returns the per-type subdirectories created under the
// workspace root (and mirrored under archived/).
func DocumentDirs() []string {
	return []string{
		typeDirs[types.TypeStrategy],
		typeDirs[types.TypeInitiative],
		typeDirs[types.TypeTask],
		typeDirs[types.TypeAdr],
	}
}

// Detect walks up from start looking for a .charter directory and returns the
// workspace root (the .charter directory itself). The CHARTER_WORKSPACE
// environment variable short-circuits the walk.
func Detect(start string) (string, error) {
	if env := os.Getenv(EnvWorkspace); env != "" {
		return filepath.Abs(env)
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if filepath.Base(dir) == WorkspaceDirName {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	for {
		candidate := filepath.Join(dir, WorkspaceDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w under %s", types.ErrWorkspaceNotFound, start)
		}
		dir = parent
	}
}

// DocumentPath returns the workspace-relative path for a document of the
// given type and slug. Strategies and initiatives live in their own
// directories; tasks and ADRs are single files; the vision is a fixed file at
// the root.
func DocumentPath(t types.DocumentType, slug string) string {
	switch t {
	case types.TypeVision:
		return VisionFileName
	case types.TypeStrategy, types.TypeInitiative:
		return filepath.Join(typeDirs[t], slug, string(t)+".md")
	default:
		return filepath.Join(typeDirs[t], slug+".md")
	}
}

// ArchivedPath maps a workspace-relative document path to its location under
// the archived/ mirror. Already-archived paths are returned unchanged.
func ArchivedPath(rel string) string {
	if IsArchivedPath(rel) {
		return rel
	}
	return filepath.Join(ArchivedDirName, rel)
}

// IsArchivedPath reports whether rel lies under the archived/ mirror.
func IsArchivedPath(rel string) bool {
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return first == ArchivedDirName
}

// TypeFromPath derives the document type from a workspace-relative path,
// looking through the archived/ mirror.
func TypeFromPath(rel string) (types.DocumentType, bool) {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimPrefix(rel, ArchivedDirName+"/")
	if rel == VisionFileName {
		return types.TypeVision, true
	}
	first, _, _ := strings.Cut(rel, "/")
	for t, dir := range typeDirs {
		if dir == first {
			return t, true
		}
	}
	return "", false
}

package workspace

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/internal/markdown"
	"github.com/mesh-intelligence/charter/internal/paths"
	"github.com/mesh-intelligence/charter/internal/sync"
	"github.com/mesh-intelligence/charter/pkg/types"
)

const defaultPrefix = "PROJ"

// InitOptions configures workspace creation.
type InitOptions struct {
	// ProjectName titles the vision document and seeds the short code
	// prefix. Defaults to the base directory name.
	ProjectName string
	// Prefix overrides the derived short code prefix.
	Prefix string
}

// InitResult reports what Init did.
type InitResult struct {
	Root    string
	Created bool
	Prefix  string
}

type workspaceConfig struct {
	ProjectName string `yaml:"project_name"`
	Prefix      string `yaml:"prefix"`
}

// Init creates (or adopts) the workspace directory under base, seeds the
// vision document, and returns a service over it. Running Init on an
// existing workspace is a no-op beyond filling in whatever is missing.
func Init(base string, opts InitOptions) (*Service, *InitResult, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return nil, nil, err
	}

	name := opts.ProjectName
	if name == "" {
		name = filepath.Base(absBase)
	}

	prefix := strings.ToUpper(opts.Prefix)
	if prefix == "" {
		prefix = derivePrefix(name)
	}
	if !types.ValidPrefix(prefix) {
		return nil, nil, fmt.Errorf("short code prefix %q: must be %d to %d uppercase letters", prefix, types.MinPrefixLen, types.MaxPrefixLen)
	}

	root := filepath.Join(absBase, paths.WorkspaceDirName)
	created := false
	if _, err := os.Stat(root); os.IsNotExist(err) {
		created = true
	}

	dirs := append(paths.DocumentDirs(), paths.ArchivedDirName)
	for _, dir := range append([]string{""}, dirs...) {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating workspace directories: %w", err)
		}
	}

	svc := &Service{Root: root}

	err = svc.withStore(func(store *index.Store) error {
		if _, ok, err := store.GetConfig(index.ConfigKeyPrefix); err != nil {
			return err
		} else if !ok {
			if err := store.SetPrefix(prefix); err != nil {
				return err
			}
		}
		if _, ok, err := store.GetConfig(index.ConfigKeyWorkspaceID); err != nil {
			return err
		} else if !ok {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			if err := store.SetConfig(index.ConfigKeyWorkspaceID, id.String()); err != nil {
				return err
			}
		}

		visionPath := filepath.Join(root, paths.VisionFileName)
		if _, err := os.Stat(visionPath); os.IsNotExist(err) {
			code, err := store.NextShortCode(types.TypeVision)
			if err != nil {
				return err
			}
			doc := markdown.NewDocument(types.TypeVision, name, "", code)
			if err := markdown.WriteFile(visionPath, doc); err != nil {
				return fmt.Errorf("writing vision document: %w", err)
			}
		}

		configPath := filepath.Join(root, paths.ConfigFileName)
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			raw, err := yaml.Marshal(workspaceConfig{ProjectName: name, Prefix: prefix})
			if err != nil {
				return err
			}
			if err := atomic.WriteFile(configPath, bytes.NewReader(raw)); err != nil {
				return fmt.Errorf("writing workspace config: %w", err)
			}
		}

		_, err = sync.New(root, store).Run()
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return svc, &InitResult{Root: root, Created: created, Prefix: prefix}, nil
}

// derivePrefix builds a short code prefix from a project name: its letters,
// uppercased, capped at six, padded out to the minimum when too short.
func derivePrefix(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == 6 {
				break
			}
		}
	}
	prefix := b.String()
	if len(prefix) < types.MinPrefixLen {
		return defaultPrefix
	}
	return prefix
}

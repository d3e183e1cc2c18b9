// Package sync reconciles the index store with the markdown tree on disk.
// The tree is the single source of truth: the engine diffs files against
// cached rows by content hash, applies the minimal set of upserts and
// deletes, and can rebuild the whole store from nothing.
package sync

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/internal/markdown"
	"github.com/mesh-intelligence/charter/internal/paths"
	"github.com/mesh-intelligence/charter/pkg/types"
)

// Engine runs synchronization passes for one workspace.
type Engine struct {
	root  string
	store *index.Store
}

// New creates an engine over an open store. root is the workspace directory
// (the .charter directory).
func New(root string, store *index.Store) *Engine {
	return &Engine{root: root, store: store}
}

// Run performs one synchronization pass. Individual file failures are
// isolated into Result.Warnings; the pass as a whole still succeeds. Running
// twice with no filesystem changes produces no writes on the second run.
func (e *Engine) Run() (*Result, error) {
	files, err := e.enumerate()
	if err != nil {
		return nil, err
	}

	result := &Result{}

	// Counters first: adopting every short code already on disk (archived
	// files included) before any assignment guarantees fresh codes cannot
	// collide, regardless of enumeration order.
	e.recoverCounters(files, result)

	seen := make(map[string]bool, len(files))
	for _, rel := range files {
		seen[rel] = true
	}

	// Rows whose file disappeared are pruned before the upserts so a moved
	// file (archiving relocates them) can re-enter under its new path
	// without tripping the short code uniqueness constraint.
	indexed, err := e.store.Paths()
	if err != nil {
		return nil, err
	}
	for _, rel := range indexed {
		if seen[rel] {
			continue
		}
		if _, err := e.store.Delete(rel); err != nil {
			result.warnf("pruning %s: %v", rel, err)
			continue
		}
		result.Deleted = append(result.Deleted, rel)
	}

	for _, rel := range files {
		e.syncFile(rel, result)
	}

	// Relationships are recomputed strictly after all upserts so forward
	// references resolve. Skipped entirely when nothing changed, keeping
	// the pass write-free.
	if result.Changed() > 0 {
		if err := e.rebuildRelationships(result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// syncFile reconciles one file against its index row.
func (e *Engine) syncFile(rel string, result *Result) {
	abs := filepath.Join(e.root, rel)

	data, err := os.ReadFile(abs)
	if err != nil {
		result.warnf("reading %s: %v", rel, err)
		return
	}
	hash := markdown.Hash(data)

	existing, err := e.store.Get(rel)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		result.warnf("looking up %s: %v", rel, err)
		return
	}
	if existing != nil && existing.FileHash == hash {
		result.Unchanged = append(result.Unchanged, rel)
		return
	}

	doc, err := markdown.Parse(data)
	if err != nil {
		result.warnf("parsing %s: %v", rel, err)
		return
	}

	// A document dropped in without a short code gets one assigned and
	// written back; the file stays the authority for the code afterwards.
	if doc.ShortCode == "" {
		code, err := e.store.NextShortCode(doc.Type)
		if err != nil {
			result.warnf("assigning short code for %s: %v", rel, err)
			return
		}
		doc.ShortCode = code.String()
		if err := markdown.WriteFile(abs, doc); err != nil {
			result.warnf("writing short code to %s: %v", rel, err)
			return
		}
		if hash, err = markdown.HashFile(abs); err != nil {
			result.warnf("rehashing %s: %v", rel, err)
			return
		}
	} else if sc, err := types.ParseShortCode(doc.ShortCode); err == nil {
		if err := e.store.AdvanceCounter(sc.Type, sc.Number); err != nil {
			result.warnf("advancing counter for %s: %v", rel, err)
		}
	} else {
		result.warnf("adopting malformed short code %q in %s", doc.ShortCode, rel)
	}

	phase, err := doc.Phase()
	if err != nil {
		result.warnf("parsing %s: %v", rel, err)
		return
	}

	rec := &index.Record{
		Filepath:        rel,
		ID:              doc.ID,
		ShortCode:       doc.ShortCode,
		Title:           doc.Title,
		Type:            doc.Type,
		Phase:           phase,
		ParentID:        doc.ParentID,
		BlockedBy:       doc.BlockedBy,
		Content:         doc.Body,
		FileHash:        hash,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
		Archived:        doc.Archived || paths.IsArchivedPath(rel),
		ExitCriteriaMet: doc.ExitCriteriaMet,
	}
	if existing != nil {
		rec.CreatedAt = existing.CreatedAt
	}

	if err := e.store.Upsert(rec); err != nil {
		result.warnf("indexing %s: %v", rel, err)
		return
	}

	tags := make([]string, 0, len(doc.Tags))
	for _, t := range doc.Tags {
		tags = append(tags, t.String())
	}
	if err := e.store.ReplaceTags(rel, tags); err != nil {
		result.warnf("indexing tags for %s: %v", rel, err)
	}
	if err := e.store.UpdateSearch(rel, doc.Title, doc.Body); err != nil {
		result.warnf("indexing search for %s: %v", rel, err)
	}

	if existing != nil {
		result.Updated = append(result.Updated, rel)
	} else {
		result.Imported = append(result.Imported, rel)
	}
}

// rebuildRelationships recomputes every parent edge from the final document
// set. Edges whose parent id does not resolve are dropped with a warning.
func (e *Engine) rebuildRelationships(result *Result) error {
	if err := e.store.ClearRelationships(); err != nil {
		return err
	}

	recs, err := e.store.List(index.Filter{})
	if err != nil {
		return err
	}

	byID := make(map[string]*index.Record, len(recs))
	for _, rec := range recs {
		byID[rec.ID] = rec
	}

	for _, rec := range recs {
		if rec.ParentID == "" {
			continue
		}
		parent, ok := byID[rec.ParentID]
		if !ok {
			result.warnf("dropping dangling parent reference %q in %s", rec.ParentID, rec.Filepath)
			continue
		}
		if err := e.store.InsertRelationship(rec.Filepath, parent.Filepath, rec.ID, parent.ID); err != nil {
			return err
		}
	}
	return nil
}

// recoverCounters scans every file's frontmatter for short codes and raises
// the per-type counters past the highest number seen. This is what makes
// counter state survive a deleted or corrupt store, archived documents
// included.
func (e *Engine) recoverCounters(files []string, result *Result) {
	highest := make(map[types.DocumentType]int)
	seenPrefix := ""
	for _, rel := range files {
		code, ok := readShortCode(filepath.Join(e.root, rel))
		if !ok {
			continue
		}
		sc, err := types.ParseShortCode(code)
		if err != nil {
			continue
		}
		if sc.Number > highest[sc.Type] {
			highest[sc.Type] = sc.Number
		}
		if seenPrefix == "" {
			seenPrefix = sc.Prefix
		}
	}

	// A rebuilt store has no prefix row; adopt the prefix the files use so
	// assignment keeps working after full reconstruction.
	if seenPrefix != "" {
		if _, ok, err := e.store.GetConfig(index.ConfigKeyPrefix); err == nil && !ok {
			if err := e.store.SetPrefix(seenPrefix); err != nil {
				result.warnf("recovering prefix: %v", err)
			}
		}
	}

	for t, n := range highest {
		if err := e.store.AdvanceCounter(t, n); err != nil {
			result.warnf("recovering %s counter: %v", t, err)
		}
	}
}

// enumerate lists workspace-relative paths of every markdown document,
// including the archived/ mirror, skipping hidden directories and files
// outside the document directory conventions.
func (e *Engine) enumerate() ([]string, error) {
	var files []string
	err := filepath.WalkDir(e.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != e.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(e.root, path)
		if err != nil {
			return err
		}
		if _, ok := paths.TypeFromPath(rel); !ok {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerating documents under %s: %w", e.root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Package markdown reads and writes charter document files: a YAML
// frontmatter block between --- fences followed by the markdown body. Files
// written here are the system's source of truth, so every write is atomic.
package markdown

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/charter/pkg/types"
)

const fence = "---"

// frontmatter is the YAML block at the top of every document file.
// exit_criteria_met is an advisory cache; the parsed value is always
// recomputed from the body checklist.
type frontmatter struct {
	ID              string    `yaml:"id"`
	Level           string    `yaml:"level"`
	Title           string    `yaml:"title"`
	ShortCode       string    `yaml:"short_code,omitempty"`
	CreatedAt       time.Time `yaml:"created_at"`
	UpdatedAt       time.Time `yaml:"updated_at"`
	Parent          string    `yaml:"parent,omitempty"`
	BlockedBy       []string  `yaml:"blocked_by"`
	Archived        bool      `yaml:"archived"`
	ExitCriteriaMet bool      `yaml:"exit_criteria_met"`
	Tags            []string  `yaml:"tags"`
}

// Parse decodes a complete document file into the document model. The phase
// tag is mandatory: a document without exactly one "#phase/" tag is invalid.
func Parse(data []byte) (*types.Document, error) {
	fm, body, err := split(data)
	if err != nil {
		return nil, err
	}

	var raw frontmatter
	if err := yaml.Unmarshal(fm, &raw); err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}

	docType, err := types.ParseDocumentType(raw.Level)
	if err != nil {
		return nil, err
	}

	doc := &types.Document{
		ID:        raw.ID,
		ShortCode: raw.ShortCode,
		Type:      docType,
		Title:     raw.Title,
		ParentID:  raw.Parent,
		BlockedBy: raw.BlockedBy,
		Archived:  raw.Archived,
		CreatedAt: raw.CreatedAt.UTC(),
		UpdatedAt: raw.UpdatedAt.UTC(),
		Body:      body,
	}

	phaseSeen := false
	for _, s := range raw.Tags {
		tag, err := types.ParseTag(s)
		if err != nil {
			return nil, err
		}
		if tag.IsPhase() {
			if phaseSeen {
				return nil, fmt.Errorf("multiple phase tags: %w", types.ErrMissingPhaseTag)
			}
			phaseSeen = true
		}
		doc.Tags = append(doc.Tags, tag)
	}
	if !phaseSeen {
		return nil, types.ErrMissingPhaseTag
	}

	_, done, total := Criteria(body)
	doc.ExitCriteriaMet = total > 0 && done == total

	return doc, nil
}

// Render serializes a document back to its file form. The frontmatter's
// exit_criteria_met cache is refreshed from the body before writing.
func Render(doc *types.Document) ([]byte, error) {
	_, done, total := Criteria(doc.Body)

	tags := make([]string, 0, len(doc.Tags))
	for _, t := range doc.Tags {
		tags = append(tags, t.String())
	}

	fm := frontmatter{
		ID:              doc.ID,
		Level:           string(doc.Type),
		Title:           doc.Title,
		ShortCode:       doc.ShortCode,
		CreatedAt:       doc.CreatedAt.UTC(),
		UpdatedAt:       doc.UpdatedAt.UTC(),
		Parent:          doc.ParentID,
		BlockedBy:       doc.BlockedBy,
		Archived:        doc.Archived,
		ExitCriteriaMet: total > 0 && done == total,
		Tags:            tags,
	}

	encoded, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	buf.Write(encoded)
	buf.WriteString(fence + "\n\n")
	buf.WriteString(strings.TrimLeft(doc.Body, "\n"))
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// ReadFile parses the document at path.
func ReadFile(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteFile atomically writes the document to path, creating parent
// directories as needed.
func WriteFile(path string, doc *types.Document) error {
	data, err := Render(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Hash returns the hex SHA-256 of raw file content; the synchronization
// engine uses it to detect changes without re-parsing.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile hashes the file at path.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return Hash(data), nil
}

// split separates the frontmatter block from the body. The fences must be
// bare "---" lines, the first of them on line one.
func split(data []byte) (fm []byte, body string, err error) {
	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != fence {
		return nil, "", fmt.Errorf("missing frontmatter fence")
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == fence {
			fm = []byte(strings.Join(lines[1:i], "\n"))
			body = strings.Join(lines[i+1:], "\n")
			body = strings.TrimPrefix(body, "\n")
			return fm, body, nil
		}
	}
	return nil, "", fmt.Errorf("unterminated frontmatter fence")
}

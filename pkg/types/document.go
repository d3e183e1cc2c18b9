package types

import (
	"fmt"
	"strings"
	"time"
)

// DocumentType identifies which phase set, template, and directory convention
// apply to a document.
type DocumentType string

// The five document types, ordered vision down to task, plus standalone ADRs.
const (
	TypeVision     DocumentType = "vision"
	TypeStrategy   DocumentType = "strategy"
	TypeInitiative DocumentType = "initiative"
	TypeTask       DocumentType = "task"
	TypeAdr        DocumentType = "adr"
)

// DocumentTypes lists all valid document types.
var DocumentTypes = []DocumentType{TypeVision, TypeStrategy, TypeInitiative, TypeTask, TypeAdr}

// codeLetters maps each document type to the single letter used in short codes.
var codeLetters = map[DocumentType]string{
	TypeVision:     "V",
	TypeStrategy:   "S",
	TypeInitiative: "I",
	TypeTask:       "T",
	TypeAdr:        "A",
}

// parentTypes maps each document type to the type its parent must have.
// Vision and ADR are standalone.
var parentTypes = map[DocumentType]DocumentType{
	TypeStrategy:   TypeVision,
	TypeInitiative: TypeStrategy,
	TypeTask:       TypeInitiative,
}

// ParseDocumentType parses a document type string case-insensitively.
// Returns ErrInvalidDocumentType for unknown values.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDocumentType, s)
	}
	return t, nil
}

// Valid reports whether t is one of the five known document types.
func (t DocumentType) Valid() bool {
	_, ok := codeLetters[t]
	return ok
}

// CodeLetter returns the single-letter type marker used in short codes
// (V, S, I, T, A).
func (t DocumentType) CodeLetter() string {
	return codeLetters[t]
}

// TypeFromCodeLetter resolves a short-code type letter back to its document
// type.
func TypeFromCodeLetter(letter string) (DocumentType, bool) {
	for t, l := range codeLetters {
		if l == letter {
			return t, true
		}
	}
	return "", false
}

// ParentType returns the document type a parent of t must have. The second
// return is false for standalone types (vision, adr).
func (t DocumentType) ParentType() (DocumentType, bool) {
	p, ok := parentTypes[t]
	return p, ok
}

// Document is the in-memory representation of one markdown file. The Type
// discriminant selects per-type behavior (phase sequence, template, parent
// rules); all other fields are shared across types.
type Document struct {
	ID        string
	ShortCode string
	Type      DocumentType
	Title     string
	ParentID  string
	BlockedBy []string
	Tags      []Tag
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Body is the markdown content without the frontmatter block. The exit
	// criteria section, when present, is part of the body.
	Body string

	// ExitCriteriaMet is derived from the checklist in the body on every
	// parse: true iff the checklist is non-empty and fully checked.
	ExitCriteriaMet bool
}

// Phase returns the document's current phase from its phase tag.
// A document with no phase tag is invalid.
func (d *Document) Phase() (Phase, error) {
	for _, tag := range d.Tags {
		if tag.IsPhase() {
			return tag.Phase, nil
		}
	}
	return "", ErrMissingPhaseTag
}

// SetPhase replaces the document's phase tag. If no phase tag exists one is
// prepended.
func (d *Document) SetPhase(p Phase) {
	for i, tag := range d.Tags {
		if tag.IsPhase() {
			d.Tags[i] = PhaseTag(p)
			return
		}
	}
	d.Tags = append([]Tag{PhaseTag(p)}, d.Tags...)
}

// Touch updates the modification timestamp.
func (d *Document) Touch() {
	d.UpdatedAt = time.Now().UTC().Truncate(time.Second)
}

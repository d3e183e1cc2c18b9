package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned across the charter core. Callers match with
// errors.Is; wrapping adds the path or reference that failed.
var (
	ErrNotFound            = errors.New("document not found")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrUnknownPhase        = errors.New("unknown phase")
	ErrMissingPhaseTag     = errors.New("document has no phase tag")
	ErrAlreadyArchived     = errors.New("document is already archived")
	ErrAlreadyExists       = errors.New("document already exists")
	ErrInvalidShortCode    = errors.New("invalid short code")
	ErrInvalidParent       = errors.New("invalid parent")
	ErrWorkspaceNotFound   = errors.New("no charter workspace found")
	ErrCriterionNotFound   = errors.New("exit criterion not found")
)

// InvalidPhaseTransitionError reports a transition request the state machine
// rejects.
type InvalidPhaseTransitionError struct {
	Type DocumentType
	From Phase
	To   Phase
}

func (e *InvalidPhaseTransitionError) Error() string {
	return fmt.Sprintf("invalid phase transition from %q to %q for %s document", e.From, e.To, e.Type)
}

// ExitCriteriaNotMetError blocks a terminal transition while checklist items
// remain unchecked (or no checklist exists).
type ExitCriteriaNotMetError struct {
	Completed int
	Total     int
	Missing   []string
}

func (e *ExitCriteriaNotMetError) Error() string {
	return fmt.Sprintf("exit criteria not met: %d of %d complete", e.Completed, e.Total)
}

// ValidationError collects structural problems found in one document.
type ValidationError struct {
	Filepath string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Filepath, strings.Join(e.Problems, "; "))
}

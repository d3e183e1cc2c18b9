package types

import (
	"fmt"
	"strings"
)

// phaseTagPrefix marks the tag that carries the document's current phase.
const phaseTagPrefix = "#phase/"

// Tag is either a phase tag ("#phase/<name>") or a plain label ("#label").
// A document carries exactly one phase tag.
type Tag struct {
	Phase Phase
	Label string
}

// PhaseTag creates a phase tag for p.
func PhaseTag(p Phase) Tag {
	return Tag{Phase: p}
}

// LabelTag creates a plain label tag. A leading '#' is stripped.
func LabelTag(label string) Tag {
	return Tag{Label: strings.TrimPrefix(label, "#")}
}

// IsPhase reports whether the tag carries a phase.
func (t Tag) IsPhase() bool {
	return t.Phase != ""
}

// String renders the tag in its frontmatter form.
func (t Tag) String() string {
	if t.IsPhase() {
		return phaseTagPrefix + string(t.Phase)
	}
	return "#" + t.Label
}

// ParseTag parses a frontmatter tag string. "#phase/<name>" must name a known
// phase; anything else is a label.
func ParseTag(s string) (Tag, error) {
	if rest, ok := strings.CutPrefix(s, phaseTagPrefix); ok {
		p, err := ParsePhase(rest)
		if err != nil {
			return Tag{}, fmt.Errorf("tag %q: %w", s, err)
		}
		return PhaseTag(p), nil
	}
	return LabelTag(s), nil
}

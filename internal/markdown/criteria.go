package markdown

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/charter/pkg/types"
)

// Exit-criteria section headings recognized in document bodies.
var criteriaHeadings = []string{"## Exit Criteria", "## Acceptance Criteria"}

// Criterion is one checklist item inside the exit-criteria section.
type Criterion struct {
	Text string
	Done bool
}

// Criteria extracts the checklist from the exit-criteria section of a body.
// Parsing stops at the next H2 heading. A body without the section yields an
// empty list, which counts as criteria NOT met.
func Criteria(body string) (items []Criterion, done, total int) {
	inSection := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if isCriteriaHeading(trimmed) {
			inSection = true
			continue
		}
		if inSection && strings.HasPrefix(trimmed, "## ") {
			break
		}
		if !inSection {
			continue
		}

		if text, ok := strings.CutPrefix(trimmed, "- [ ]"); ok {
			items = append(items, Criterion{Text: strings.TrimSpace(text)})
			continue
		}
		if text, ok := cutChecked(trimmed); ok {
			items = append(items, Criterion{Text: strings.TrimSpace(text), Done: true})
		}
	}

	for _, c := range items {
		if c.Done {
			done++
		}
	}
	return items, done, len(items)
}

// CriteriaStatus summarizes checklist completion for gating terminal
// transitions: met is true iff the list is non-empty and fully checked.
func CriteriaStatus(body string) (met bool, done, total int, missing []string) {
	items, done, total := Criteria(body)
	for _, c := range items {
		if !c.Done {
			missing = append(missing, c.Text)
		}
	}
	return total > 0 && done == total, done, total, missing
}

// SetCriterion checks or unchecks the checklist item whose text matches,
// returning the updated body. Matching is exact on the trimmed item text.
func SetCriterion(body, text string, done bool) (string, error) {
	lines := strings.Split(body, "\n")
	inSection := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if isCriteriaHeading(trimmed) {
			inSection = true
			continue
		}
		if inSection && strings.HasPrefix(trimmed, "## ") {
			break
		}
		if !inSection {
			continue
		}

		var item string
		if t, ok := strings.CutPrefix(trimmed, "- [ ]"); ok {
			item = strings.TrimSpace(t)
		} else if t, ok := cutChecked(trimmed); ok {
			item = strings.TrimSpace(t)
		} else {
			continue
		}

		if item == text {
			box := "- [ ] "
			if done {
				box = "- [x] "
			}
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			lines[i] = indent + box + item
			return strings.Join(lines, "\n"), nil
		}
	}
	return "", fmt.Errorf("%w: %q", types.ErrCriterionNotFound, text)
}

func isCriteriaHeading(line string) bool {
	for _, h := range criteriaHeadings {
		if line == h {
			return true
		}
	}
	return false
}

func cutChecked(line string) (string, bool) {
	if t, ok := strings.CutPrefix(line, "- [x]"); ok {
		return t, true
	}
	return strings.CutPrefix(line, "- [X]")
}

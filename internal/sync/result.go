package sync

import "fmt"

// Result reports what one synchronization pass did. Paths are workspace
// relative.
type Result struct {
	Imported  []string
	Updated   []string
	Deleted   []string
	Unchanged []string
	Warnings  []string
}

// Changed returns the number of index writes the pass performed.
func (r *Result) Changed() int {
	return len(r.Imported) + len(r.Updated) + len(r.Deleted)
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

package masteryls

import (
	"fmt"
	"io"
	"sort"
)

// Report collects every diagnostic from a corpus run so a content author
// can fix all malformed blocks in one pass instead of re-running per file
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Add appends diagnostics to the report
func (r *Report) Add(diags ...Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, diags...)
}

// Empty returns true when no diagnostics were recorded
func (r *Report) Empty() bool {
	return len(r.Diagnostics) == 0
}

// Sort orders diagnostics by file, then line, then kind
func (r *Report) Sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Kind < b.Kind
	})
}

// CountByKind tallies diagnostics per kind
func (r *Report) CountByKind() map[DiagnosticKind]int {
	counts := make(map[DiagnosticKind]int)
	for _, d := range r.Diagnostics {
		counts[d.Kind]++
	}
	return counts
}

// WriteText writes the human-readable summary, one diagnostic per line
// followed by per-kind totals
func (r *Report) WriteText(w io.Writer) error {
	for _, d := range r.Diagnostics {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}

	counts := r.CountByKind()
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		if _, err := fmt.Fprintf(w, "%s: %d\n", kind, counts[DiagnosticKind(kind)]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "total: %d diagnostic(s)\n", len(r.Diagnostics))
	return err
}

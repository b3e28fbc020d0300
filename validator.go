package masteryls

import (
	"fmt"
	"strings"
)

// Validate checks the structural invariants of a parsed QuestionBlock.
// Multiple-choice blocks must carry exactly one correct option; zero and
// more-than-one both fail, with the count found attached so callers can
// decide tolerance. Essay blocks are valid without options. Failures are
// diagnostics, the block is simply kept out of the bank.
func Validate(q *QuestionBlock) []Diagnostic {
	var diags []Diagnostic

	if strings.TrimSpace(q.Body) == "" {
		diags = append(diags, Diagnostic{
			Kind:    KindMissingRequiredField,
			File:    q.File,
			Line:    q.Line,
			Message: "question body is blank",
		})
	}

	if q.Type == TypeMultipleChoice {
		if len(q.Options) == 0 {
			diags = append(diags, Diagnostic{
				Kind:    KindAmbiguousAnswer,
				File:    q.File,
				Line:    q.Line,
				Message: "multiple-choice question has no options",
				Count:   0,
			})
		} else if n := q.CorrectCount(); n != 1 {
			diags = append(diags, Diagnostic{
				Kind:    KindAmbiguousAnswer,
				File:    q.File,
				Line:    q.Line,
				Message: fmt.Sprintf("expected exactly one correct option, found %d", n),
				Count:   n,
			})
		}
	}

	return diags
}

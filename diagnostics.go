package masteryls

import "fmt"

// DiagnosticKind classifies a parse or validation failure
type DiagnosticKind string

const (
	KindMalformedHeader      DiagnosticKind = "malformed-header"
	KindMissingRequiredField DiagnosticKind = "missing-required-field"
	KindUnknownQuestionType  DiagnosticKind = "unknown-question-type"
	KindUnterminatedBlock    DiagnosticKind = "unterminated-block"
	KindAmbiguousAnswer      DiagnosticKind = "ambiguous-or-missing-answer"
	KindDuplicateID          DiagnosticKind = "duplicate-id"
	KindFileError            DiagnosticKind = "file-error"
)

// Diagnostic represents one recorded problem with a block or file.
// Diagnostics are collected, never thrown: a malformed block must not
// abort processing of the rest of the corpus.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	File    string         `json:"file"`
	Line    int            `json:"line,omitempty"` // 1-based, 0 when not line-specific
	Message string         `json:"message"`
	Count   int            `json:"count,omitempty"` // correct-option count for ambiguous answers
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.File, d.Kind, d.Message)
}

// FallbackKey builds the deterministic bank key for blocks without an id
func FallbackKey(file string, ordinal int) string {
	return fmt.Sprintf("%s#%d", file, ordinal)
}

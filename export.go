package masteryls

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// BankExport is the top-level JSON artifact written for downstream tools
type BankExport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Root        string           `json:"root,omitempty"`
	Questions   []ExportQuestion `json:"questions"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty"`
}

// ExportQuestion is the per-record shape: id, title, type, body and the
// ordered options with their correctness flags
type ExportQuestion struct {
	ID      string       `json:"id,omitempty"`
	Key     string       `json:"key"`
	Title   string       `json:"title,omitempty"`
	Type    QuestionType `json:"type"`
	Body    string       `json:"body"`
	Options []Option     `json:"options,omitempty"`
	File    string       `json:"file,omitempty"`
	Line    int          `json:"line,omitempty"`
}

// NewBankExport builds the export artifact from a bank and its report
func NewBankExport(root string, bank *Bank, report *Report) *BankExport {
	export := &BankExport{
		GeneratedAt: time.Now(),
		Root:        root,
	}
	for _, q := range bank.Questions() {
		export.Questions = append(export.Questions, ExportQuestion{
			ID:      q.ID,
			Key:     q.Key(),
			Title:   q.Title,
			Type:    q.Type,
			Body:    q.Body,
			Options: q.Options,
			File:    q.File,
			Line:    q.Line,
		})
	}
	if report != nil {
		export.Diagnostics = report.Diagnostics
	}
	return export
}

// Write serializes the export as indented JSON
func (e *BankExport) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("failed to encode bank export: %w", err)
	}
	return nil
}

// WriteFile writes the export to the given path, or stdout when the path
// is empty
func (e *BankExport) WriteFile(path string) error {
	if path == "" {
		return e.Write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()
	return e.Write(f)
}

package masteryls

import "fmt"

// ParseBlock turns one extracted raw block into a QuestionBlock. A nil
// question with diagnostics means the block was unusable; a non-nil
// question may still fail validation later. Parsing records what the
// block says, validation judges it (see Validate).
func ParseBlock(file string, ordinal int, raw RawBlock, cfg *Config) (*QuestionBlock, []Diagnostic) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if len(raw.Lines) == 0 {
		return nil, []Diagnostic{{
			Kind:    KindMalformedHeader,
			File:    file,
			Line:    raw.StartLine,
			Message: "block is empty, expected a JSON header line",
		}}
	}

	headerLine := raw.StartLine + 1
	h, diag := ParseHeader(file, headerLine, raw.Lines[0])
	if diag != nil {
		return nil, []Diagnostic{*diag}
	}

	var diags []Diagnostic
	if cfg.RequireID && h.ID == "" {
		diags = append(diags, Diagnostic{
			Kind:    KindMissingRequiredField,
			File:    file,
			Line:    headerLine,
			Message: "header has no id and require_id is set",
		})
		return nil, diags
	}

	q := &QuestionBlock{
		ID:      h.ID,
		Title:   h.Title,
		Type:    ParseType(h.Type),
		Body:    h.Body,
		File:    file,
		Line:    raw.StartLine,
		Ordinal: ordinal,
	}

	if q.Type == TypeUnknown {
		q.RawType = h.Type
		diags = append(diags, Diagnostic{
			Kind:    KindUnknownQuestionType,
			File:    file,
			Line:    headerLine,
			Message: fmt.Sprintf("unrecognized question type %q", h.Type),
		})
		if cfg.UnknownTypes != UnknownTypesKeep {
			return nil, diags
		}
	}

	// Option parsing is gated on type: essay blocks never grow options,
	// even when checkbox-looking lines trail the header.
	if q.Type == TypeMultipleChoice {
		q.Options = ParseOptions(raw.Lines[1:])
	}

	return q, diags
}

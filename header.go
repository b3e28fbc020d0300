package masteryls

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseHeader decodes the JSON object on the first line of a masteryls
// block. `type` and `body` are required; `id` and `title` are optional in
// the corpus and absence is distinguished from an empty string so the
// require_id policy can act on it. A blank body after trimming counts as
// missing, there is nothing downstream could render.
func ParseHeader(file string, line int, raw string) (*Header, *Diagnostic) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &Diagnostic{
			Kind:    KindMalformedHeader,
			File:    file,
			Line:    line,
			Message: fmt.Sprintf("header line is not a valid JSON object: %v", err),
		}
	}

	var h Header
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return nil, &Diagnostic{
			Kind:    KindMalformedHeader,
			File:    file,
			Line:    line,
			Message: fmt.Sprintf("header fields have unexpected types: %v", err),
		}
	}

	var missing []string
	if _, ok := fields["type"]; !ok {
		missing = append(missing, "type")
	}
	if _, ok := fields["body"]; !ok || strings.TrimSpace(h.Body) == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return nil, &Diagnostic{
			Kind:    KindMissingRequiredField,
			File:    file,
			Line:    line,
			Message: fmt.Sprintf("header is missing required field(s): %s", strings.Join(missing, ", ")),
		}
	}

	return &h, nil
}

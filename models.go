package masteryls

// QuestionType identifies the kind of question a masteryls block describes
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeEssay          QuestionType = "essay"
	// TypeUnknown is assigned to unrecognized type tags so newer content can
	// be carried through instead of hard-failing (see Config.UnknownTypes).
	TypeUnknown QuestionType = "unknown"
)

// ParseType maps a raw type tag to a QuestionType
func ParseType(raw string) QuestionType {
	switch raw {
	case string(TypeMultipleChoice):
		return TypeMultipleChoice
	case string(TypeEssay):
		return TypeEssay
	default:
		return TypeUnknown
	}
}

// Option represents a single answer choice with its correctness flag
type Option struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// QuestionBlock represents one parsed masteryls block
type QuestionBlock struct {
	ID      string       `json:"id,omitempty"`
	Title   string       `json:"title,omitempty"`
	Type    QuestionType `json:"type"`
	RawType string       `json:"raw_type,omitempty"` // original tag when Type is unknown
	Body    string       `json:"body"`
	Options []Option     `json:"options,omitempty"`

	// Source location, for diagnostics and fallback keys
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"` // 1-based line of the opening fence
	Ordinal int    `json:"-"`              // block index within its file
}

// Key returns the bank key for this block: the declared id when present,
// otherwise a deterministic file#ordinal fallback
func (q *QuestionBlock) Key() string {
	if q.ID != "" {
		return q.ID
	}
	return FallbackKey(q.File, q.Ordinal)
}

// CorrectCount returns the number of options flagged correct
func (q *QuestionBlock) CorrectCount() int {
	n := 0
	for _, opt := range q.Options {
		if opt.Correct {
			n++
		}
	}
	return n
}

// Header is the decoded first line of a masteryls block
type Header struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
	Body  string `json:"body"`
}

// RawBlock is an extracted but not yet parsed masteryls block
type RawBlock struct {
	Lines     []string // block content, fences excluded
	StartLine int      // 1-based line of the opening fence
}

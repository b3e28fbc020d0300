package masteryls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawBlock(startLine int, lines ...string) RawBlock {
	return RawBlock{Lines: lines, StartLine: startLine}
}

func TestParseBlockMultipleChoice(t *testing.T) {
	q, diags := ParseBlock("doc.md", 0, rawBlock(3,
		`{"id":"x1","title":"t","type":"multiple-choice","body":"q?"}`,
		"- [ ] A",
		"- [x] B",
		"- [ ] C",
	), nil)

	require.Empty(t, diags)
	require.NotNil(t, q)
	assert.Equal(t, "x1", q.ID)
	assert.Equal(t, TypeMultipleChoice, q.Type)
	assert.Equal(t, "q?", q.Body)
	assert.Equal(t, 3, q.Line)
	assert.Equal(t, []Option{
		{Text: "A", Correct: false},
		{Text: "B", Correct: true},
		{Text: "C", Correct: false},
	}, q.Options)
	assert.Empty(t, Validate(q))
}

func TestParseBlockEssayIgnoresCheckboxLines(t *testing.T) {
	// Type gates option parsing: trailing checkbox-like lines in an essay
	// block never become options.
	q, diags := ParseBlock("doc.md", 0, rawBlock(1,
		`{"type":"essay","body":"explain X"}`,
		"- [x] stray line",
	), nil)

	require.Empty(t, diags)
	require.NotNil(t, q)
	assert.Equal(t, TypeEssay, q.Type)
	assert.Empty(t, q.Options)
	assert.Empty(t, Validate(q))
}

func TestParseBlockEmptyBlock(t *testing.T) {
	q, diags := ParseBlock("doc.md", 0, rawBlock(1), nil)
	assert.Nil(t, q)
	require.Len(t, diags, 1)
	assert.Equal(t, KindMalformedHeader, diags[0].Kind)
}

func TestParseBlockMalformedHeaderAddsNothing(t *testing.T) {
	q, diags := ParseBlock("doc.md", 0, rawBlock(1, "not json", "- [x] A"), nil)
	assert.Nil(t, q)
	require.Len(t, diags, 1)
	assert.Equal(t, KindMalformedHeader, diags[0].Kind)
	assert.Equal(t, 2, diags[0].Line) // header is the line after the fence
}

func TestParseBlockUnknownTypeSkipped(t *testing.T) {
	q, diags := ParseBlock("doc.md", 0, rawBlock(1,
		`{"type":"matching","body":"pair things up"}`,
	), nil)

	assert.Nil(t, q)
	require.Len(t, diags, 1)
	assert.Equal(t, KindUnknownQuestionType, diags[0].Kind)
}

func TestParseBlockUnknownTypeKept(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UnknownTypes = UnknownTypesKeep

	q, diags := ParseBlock("doc.md", 0, rawBlock(1,
		`{"type":"matching","body":"pair things up"}`,
		"- [x] looks like an option",
	), cfg)

	require.Len(t, diags, 1)
	assert.Equal(t, KindUnknownQuestionType, diags[0].Kind)
	require.NotNil(t, q)
	assert.Equal(t, TypeUnknown, q.Type)
	assert.Equal(t, "matching", q.RawType)
	assert.Empty(t, q.Options) // only multiple-choice grows options
}

func TestParseBlockRequireID(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequireID = true

	q, diags := ParseBlock("doc.md", 0, rawBlock(1,
		`{"type":"essay","body":"no id"}`,
	), cfg)

	assert.Nil(t, q)
	require.Len(t, diags, 1)
	assert.Equal(t, KindMissingRequiredField, diags[0].Kind)
}

func TestParseBlockFallbackKey(t *testing.T) {
	q, diags := ParseBlock("doc.md", 4, rawBlock(10,
		`{"type":"essay","body":"no id"}`,
	), nil)

	require.Empty(t, diags)
	require.NotNil(t, q)
	assert.Equal(t, "doc.md#4", q.Key())
}

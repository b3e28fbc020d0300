package masteryls

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewerPromptMarksCorrectOption(t *testing.T) {
	qr := NewQuestionReviewer("test-key")
	prompt := qr.buildPrompt(&QuestionBlock{
		ID:   "x1",
		Type: TypeMultipleChoice,
		Body: "q?",
		Options: []Option{
			{Text: "A"},
			{Text: "B", Correct: true},
		},
		File: "doc.md",
		Line: 3,
	})

	assert.Contains(t, prompt, "Question: q?")
	assert.Contains(t, prompt, " 1. A")
	assert.Contains(t, prompt, "*2. B")
	assert.Contains(t, prompt, "doc.md (line 3)")
}

func TestReviewerPromptEssay(t *testing.T) {
	qr := NewQuestionReviewer("test-key")
	prompt := qr.buildPrompt(&QuestionBlock{
		Type: TypeEssay,
		Body: "explain X",
		File: "doc.md",
		Line: 1,
	})

	assert.Contains(t, prompt, "free-response question")
	assert.NotContains(t, prompt, "Options:")
}

func TestNearDupFirstQuestionIsUnique(t *testing.T) {
	// The first question never needs an LLM call
	nd := NewNearDupChecker("test-key")
	result, err := nd.CheckDuplicate(context.Background(), &QuestionBlock{
		ID: "x1", Type: TypeEssay, Body: "first",
	}, nil)

	require.NoError(t, err)
	assert.False(t, result.IsDuplicate)
}

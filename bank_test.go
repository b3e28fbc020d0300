package masteryls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bankQuestion(id, file string, ordinal int) *QuestionBlock {
	return &QuestionBlock{
		ID:      id,
		Type:    TypeEssay,
		Body:    "body of " + id,
		File:    file,
		Ordinal: ordinal,
	}
}

func TestBankInsertionOrder(t *testing.T) {
	bank := NewBank()
	require.Nil(t, bank.Add(bankQuestion("b", "one.md", 0)))
	require.Nil(t, bank.Add(bankQuestion("a", "one.md", 1)))
	require.Nil(t, bank.Add(bankQuestion("c", "two.md", 0)))

	assert.Equal(t, []string{"b", "a", "c"}, bank.Keys())
	assert.Equal(t, 3, bank.Size())
}

func TestBankLookup(t *testing.T) {
	bank := NewBank()
	require.Nil(t, bank.Add(bankQuestion("x1", "one.md", 0)))

	q, ok := bank.Get("x1")
	require.True(t, ok)
	assert.Equal(t, "body of x1", q.Body)

	_, ok = bank.Get("nope")
	assert.False(t, ok)
}

func TestBankDuplicateKeepsFirst(t *testing.T) {
	bank := NewBank()
	first := bankQuestion("x1", "one.md", 0)
	second := bankQuestion("x1", "two.md", 0)

	require.Nil(t, bank.Add(first))
	diag := bank.Add(second)

	require.NotNil(t, diag)
	assert.Equal(t, KindDuplicateID, diag.Kind)
	assert.Equal(t, "two.md", diag.File)
	assert.Contains(t, diag.Message, "one.md")

	got, ok := bank.Get("x1")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, 1, bank.Size())
}

func TestBankFallbackKeysDoNotCollide(t *testing.T) {
	bank := NewBank()
	require.Nil(t, bank.Add(bankQuestion("", "one.md", 0)))
	require.Nil(t, bank.Add(bankQuestion("", "one.md", 1)))
	require.Nil(t, bank.Add(bankQuestion("", "two.md", 0)))

	assert.Equal(t, []string{"one.md#0", "one.md#1", "two.md#0"}, bank.Keys())
}

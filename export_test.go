package masteryls

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func exportBank(t *testing.T) *Bank {
	t.Helper()
	bank := NewBank()
	require.Nil(t, bank.Add(&QuestionBlock{
		ID:   "x1",
		Type: TypeMultipleChoice,
		Body: "q?",
		Options: []Option{
			{Text: "A"},
			{Text: "B", Correct: true},
			{Text: "C"},
		},
		File: "doc.md",
		Line: 3,
	}))
	require.Nil(t, bank.Add(&QuestionBlock{
		Type: TypeEssay,
		Body: "explain X",
		File: "doc.md",
		Line: 10, Ordinal: 1,
	}))
	return bank
}

func TestBankExportRoundTrip(t *testing.T) {
	report := &Report{}
	report.Add(Diagnostic{Kind: KindDuplicateID, File: "other.md", Line: 9, Message: "dup"})

	var buf bytes.Buffer
	require.NoError(t, NewBankExport("corpus", exportBank(t), report).Write(&buf))

	var decoded BankExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Questions, 2)
	first := decoded.Questions[0]
	assert.Equal(t, "x1", first.ID)
	assert.Equal(t, "x1", first.Key)
	assert.Equal(t, TypeMultipleChoice, first.Type)

	// Option order and the single correct flag survive the round trip
	require.Len(t, first.Options, 3)
	assert.Equal(t, []Option{
		{Text: "A", Correct: false},
		{Text: "B", Correct: true},
		{Text: "C", Correct: false},
	}, first.Options)

	second := decoded.Questions[1]
	assert.Empty(t, second.ID)
	assert.Equal(t, "doc.md#1", second.Key)
	assert.Empty(t, second.Options)

	require.Len(t, decoded.Diagnostics, 1)
	assert.Equal(t, KindDuplicateID, decoded.Diagnostics[0].Kind)
}

func TestBankExportWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, NewBankExport("corpus", exportBank(t), nil).WriteFile(path))

	var decoded BankExport
	data := readFile(t, path)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Questions, 2)
}

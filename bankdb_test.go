package masteryls

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "bank.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseDB() })
	require.NoError(t, db.CreateTables())
	return db
}

func TestSaveAndLoadBank(t *testing.T) {
	db := openTestDB(t)

	bank := NewBank()
	require.Nil(t, bank.Add(&QuestionBlock{
		ID:   "x1",
		Type: TypeMultipleChoice,
		Body: "q?",
		Options: []Option{
			{Text: "A"},
			{Text: "B", Correct: true},
		},
		File: "doc.md",
		Line: 3,
	}))
	require.Nil(t, bank.Add(&QuestionBlock{
		Type: TypeEssay,
		Body: "explain X",
		File: "doc.md",
		Line: 9, Ordinal: 1,
	}))

	report := &Report{}
	report.Add(Diagnostic{Kind: KindAmbiguousAnswer, File: "doc.md", Line: 20, Message: "two correct", Count: 2})

	require.NoError(t, db.SaveBank(bank, report))

	loaded, err := db.LoadBank()
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Size())
	assert.Equal(t, bank.Keys(), loaded.Keys())

	q, ok := loaded.Get("x1")
	require.True(t, ok)
	assert.Equal(t, "q?", q.Body)
	assert.Equal(t, TypeMultipleChoice, q.Type)
	assert.Equal(t, []Option{
		{Text: "A", Correct: false},
		{Text: "B", Correct: true},
	}, q.Options)

	diags, err := db.LoadDiagnostics()
	require.NoError(t, err)
	require.Len(t, diags.Diagnostics, 1)
	assert.Equal(t, KindAmbiguousAnswer, diags.Diagnostics[0].Kind)
	assert.Equal(t, 2, diags.Diagnostics[0].Count)
}

func TestSaveBankReplacesExisting(t *testing.T) {
	db := openTestDB(t)

	first := NewBank()
	require.Nil(t, first.Add(&QuestionBlock{ID: "old", Type: TypeEssay, Body: "old", File: "a.md"}))
	require.NoError(t, db.SaveBank(first, nil))

	second := NewBank()
	require.Nil(t, second.Add(&QuestionBlock{ID: "new", Type: TypeEssay, Body: "new", File: "b.md"}))
	require.NoError(t, db.SaveBank(second, nil))

	loaded, err := db.LoadBank()
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, loaded.Keys())
}

func TestGetQuestion(t *testing.T) {
	db := openTestDB(t)

	bank := NewBank()
	require.Nil(t, bank.Add(&QuestionBlock{ID: "x1", Type: TypeEssay, Body: "found", File: "a.md"}))
	require.NoError(t, db.SaveBank(bank, nil))

	q, err := db.GetQuestion("x1")
	require.NoError(t, err)
	assert.Equal(t, "found", q.Body)

	_, err = db.GetQuestion("missing")
	assert.Error(t, err)
}

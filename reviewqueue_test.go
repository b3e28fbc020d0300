package masteryls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewQueueFIFO(t *testing.T) {
	rq := NewReviewQueue()
	rq.Add(&QuestionBlock{ID: "a", Type: TypeEssay, Body: "a"})
	rq.Add(&QuestionBlock{ID: "b", Type: TypeEssay, Body: "b"})

	assert.Equal(t, 2, rq.Size())

	first := rq.Get()
	require.NotNil(t, first)
	assert.Equal(t, "a", first.ID)

	second := rq.Get()
	require.NotNil(t, second)
	assert.Equal(t, "b", second.ID)

	assert.True(t, rq.IsEmpty())
	assert.Nil(t, rq.Get())
}

func TestReviewQueueIgnoresDuplicateKeys(t *testing.T) {
	rq := NewReviewQueue()
	rq.Add(&QuestionBlock{ID: "a", Type: TypeEssay, Body: "a"})
	rq.Add(&QuestionBlock{ID: "a", Type: TypeEssay, Body: "a again"})

	assert.Equal(t, 1, rq.Size())
}

package masteryls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInlineMarkdown(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("What does `npm run build` do? See [docs](https://example.com).")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<code>npm run build</code>")
	assert.Contains(t, string(html), `href="https://example.com"`)
}

func TestRenderQuestion(t *testing.T) {
	r := NewRenderer()
	q := &QuestionBlock{
		Type: TypeMultipleChoice,
		Body: "Pick the `bundler`",
		Options: []Option{
			{Text: "*webpack*", Correct: true},
			{Text: "a text editor"},
		},
	}

	rendered := r.RenderQuestion(q)
	assert.Contains(t, string(rendered.Body), "<code>bundler</code>")
	require.Len(t, rendered.Options, 2)
	assert.Contains(t, string(rendered.Options[0].Text), "<em>webpack</em>")
	assert.True(t, rendered.Options[0].Correct)
	assert.False(t, rendered.Options[1].Correct)
}

package masteryls

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts the inline markdown in question bodies and option
// texts (code spans, links, images) to HTML for the web review UI
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer with GFM extensions enabled
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Render converts markdown source to HTML
func (r *Renderer) Render(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// RenderQuestion renders the body and every option of a question,
// falling back to HTML-escaped plain text on render errors
func (r *Renderer) RenderQuestion(q *QuestionBlock) RenderedQuestion {
	rendered := RenderedQuestion{Question: q}

	body, err := r.Render(q.Body)
	if err != nil {
		body = template.HTML(template.HTMLEscapeString(q.Body))
	}
	rendered.Body = body

	for _, opt := range q.Options {
		text, err := r.Render(opt.Text)
		if err != nil {
			text = template.HTML(template.HTMLEscapeString(opt.Text))
		}
		rendered.Options = append(rendered.Options, RenderedOption{
			Text:    text,
			Correct: opt.Correct,
		})
	}
	return rendered
}

// RenderedQuestion pairs a question with its HTML rendition
type RenderedQuestion struct {
	Question *QuestionBlock
	Body     template.HTML
	Options  []RenderedOption
}

// RenderedOption is one HTML-rendered answer choice
type RenderedOption struct {
	Text    template.HTML
	Correct bool
}

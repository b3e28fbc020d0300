package masteryls

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// QuestionReviewer judges parsed questions for content quality using GPT-4o.
// Structural problems are already caught by Validate; this pass looks at
// what no regexp can: unclear wording, wrong flagged answers, implausible
// distractors.
type QuestionReviewer struct {
	client *openai.Client
}

// NewQuestionReviewer creates a new question reviewer with OpenAI client
func NewQuestionReviewer(apiKey string) *QuestionReviewer {
	return &QuestionReviewer{
		client: openai.NewClient(apiKey),
	}
}

// ReviewVerdict represents what the reviewer decided about a question
type ReviewVerdict string

const (
	VerdictAccept ReviewVerdict = "accept"
	VerdictFlag   ReviewVerdict = "flag"
)

// ReviewResult represents the outcome of reviewing one question
type ReviewResult struct {
	QuestionKey string        `json:"question_key"`
	Verdict     ReviewVerdict `json:"verdict"`
	Reason      string        `json:"reason"`
}

// ReviewQuestion reviews a single question and returns the verdict
func (qr *QuestionReviewer) ReviewQuestion(ctx context.Context, question *QuestionBlock, logger *ReviewLogger) (*ReviewResult, error) {
	VerboseLog("Reviewing question: %s", question.Key())

	prompt := qr.buildPrompt(question)

	// Log the request
	if logger != nil {
		logger.LogLLMRequest("QuestionReviewer", prompt)
	}

	resp, err := qr.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an expert quiz content reviewer. Evaluate existing quiz questions for clarity, correctness, and fairness. You never rewrite questions, you only accept them or flag them for the author.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        "review_question",
						Description: "Record the review verdict for a quiz question",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"reason": map[string]interface{}{
									"type":        "string",
									"description": "Explanation for the verdict",
								},
								"verdict": map[string]interface{}{
									"type":        "string",
									"enum":        []string{"accept", "flag"},
									"description": "Whether the question is fine as written or needs the author's attention",
								},
							},
							"required": []string{"reason", "verdict"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: "review_question",
				},
			},
		},
	)

	if err != nil {
		return nil, fmt.Errorf("failed to review question: %w", err)
	}

	// Log the response
	if logger != nil {
		responseText := ""
		if len(resp.Choices) > 0 && len(resp.Choices[0].Message.ToolCalls) > 0 {
			responseText = resp.Choices[0].Message.ToolCalls[0].Function.Arguments
		}
		logger.LogLLMResponse("QuestionReviewer", responseText)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from GPT-4o")
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool calls in response")
	}

	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != "review_question" {
		return nil, fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}

	var toolArgs struct {
		Reason  string `json:"reason"`
		Verdict string `json:"verdict"`
	}

	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &toolArgs); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}

	result := &ReviewResult{
		QuestionKey: question.Key(),
		Verdict:     ReviewVerdict(toolArgs.Verdict),
		Reason:      toolArgs.Reason,
	}

	// Log the result
	if logger != nil {
		logger.LogQuestionResult(question.Key(), string(result.Verdict), result.Reason)
	}

	VerboseLog("Question %s: %s - %s", question.Key(), result.Verdict, result.Reason)
	return result, nil
}

func (qr *QuestionReviewer) buildPrompt(question *QuestionBlock) string {
	var sb strings.Builder

	sb.WriteString("Review the following quiz question:\n\n")
	if question.Title != "" {
		sb.WriteString(fmt.Sprintf("Title: %s\n", question.Title))
	}
	sb.WriteString(fmt.Sprintf("Type: %s\n", question.Type))
	sb.WriteString(fmt.Sprintf("Source: %s (line %d)\n\n", question.File, question.Line))
	sb.WriteString(fmt.Sprintf("Question: %s\n\n", question.Body))

	if question.Type == TypeMultipleChoice {
		sb.WriteString("Options:\n")
		for i, option := range question.Options {
			marker := " "
			if option.Correct {
				marker = "*"
			}
			sb.WriteString(fmt.Sprintf("%s%d. %s\n", marker, i+1, option.Text))
		}
		sb.WriteString("\nThe option marked with * is flagged as correct in the source.\n\n")
	} else {
		sb.WriteString("This is a free-response question with no options.\n\n")
	}

	sb.WriteString("Evaluation criteria:\n")
	sb.WriteString("1. Is the question clear and unambiguous?\n")
	sb.WriteString("2. Is the flagged answer actually correct?\n")
	sb.WriteString("3. Are the incorrect options plausible but clearly wrong?\n")
	sb.WriteString("4. Does the question text avoid giving away the answer?\n")
	sb.WriteString("5. For free-response questions, is the prompt answerable as written?\n\n")

	sb.WriteString("Decision guidelines:\n")
	sb.WriteString("- FLAG: The question fails one of the criteria; explain which and why so the author can fix the source file.\n")
	sb.WriteString("- ACCEPT: The question is fine as written. Minor stylistic quibbles are not worth flagging.\n")

	return sb.String()
}

package masteryls

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// NearDupChecker detects reworded duplicate questions using GPT-4o.
// Exact id collisions are caught structurally when the bank is built;
// this catches the same question asked twice in different words across
// files, which no key comparison can see.
type NearDupChecker struct {
	client *openai.Client
	seen   map[string]*QuestionBlock // previously checked questions by key
}

// NewNearDupChecker creates a new near-duplicate checker
func NewNearDupChecker(apiKey string) *NearDupChecker {
	return &NearDupChecker{
		client: openai.NewClient(apiKey),
		seen:   make(map[string]*QuestionBlock),
	}
}

// NearDupResult represents the result of a near-duplicate check
type NearDupResult struct {
	IsDuplicate bool   `json:"is_duplicate"`
	Reason      string `json:"reason"`
	DuplicateOf string `json:"duplicate_of,omitempty"` // key of the matching question if found
}

// CheckDuplicate checks a question against every question seen so far
func (nd *NearDupChecker) CheckDuplicate(ctx context.Context, question *QuestionBlock, logger *ReviewLogger) (*NearDupResult, error) {
	if len(nd.seen) == 0 {
		// First question, always unique
		nd.seen[question.Key()] = question
		return &NearDupResult{IsDuplicate: false, Reason: "First question"}, nil
	}

	VerboseLog("Checking for near-duplicates: %s", question.Key())

	var sb strings.Builder
	sb.WriteString("Previously seen questions:\n\n")
	for key, existing := range nd.seen {
		writeQuestionSummary(&sb, key, existing)
	}
	sb.WriteString("New question to check:\n\n")
	writeQuestionSummary(&sb, question.Key(), question)
	sb.WriteString(nd.buildEvaluationCriteria())

	prompt := sb.String()

	// Log the request
	if logger != nil {
		logger.LogLLMRequest("NearDupChecker", prompt)
	}

	resp, err := nd.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an expert at detecting duplicate quiz questions. Compare the new question against existing questions and determine if it is a duplicate.",
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
						Name:        "check_duplicate",
						Description: "Check if the new question duplicates any existing question",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"reason": map[string]interface{}{
									"type":        "string",
									"description": "Explanation for the decision",
								},
								"is_duplicate": map[string]interface{}{
									"type":        "boolean",
									"description": "Whether the new question is a duplicate",
								},
								"duplicate_of": map[string]interface{}{
									"type":        "string",
									"description": "Key of the duplicated question if found (empty if not a duplicate)",
								},
							},
							"required": []string{"reason", "is_duplicate"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: "check_duplicate",
				},
			},
		},
	)

	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate: %w", err)
	}

	// Log the response
	if logger != nil {
		responseText := ""
		if len(resp.Choices) > 0 && len(resp.Choices[0].Message.ToolCalls) > 0 {
			responseText = resp.Choices[0].Message.ToolCalls[0].Function.Arguments
		}
		logger.LogLLMResponse("NearDupChecker", responseText)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from GPT-4o")
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool calls in response")
	}

	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != "check_duplicate" {
		return nil, fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}

	var toolArgs struct {
		Reason      string `json:"reason"`
		IsDuplicate bool   `json:"is_duplicate"`
		DuplicateOf string `json:"duplicate_of"`
	}

	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &toolArgs); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}

	result := &NearDupResult{
		IsDuplicate: toolArgs.IsDuplicate,
		Reason:      toolArgs.Reason,
		DuplicateOf: toolArgs.DuplicateOf,
	}

	// If not a duplicate, remember it for later comparisons
	if !result.IsDuplicate {
		nd.seen[question.Key()] = question
	}

	// Log the result
	if logger != nil {
		logger.LogDedupResult(question.Key(), result.IsDuplicate, result.Reason, result.DuplicateOf)
	}

	VerboseLog("Question %s: duplicate=%v, reason=%s", question.Key(), result.IsDuplicate, result.Reason)
	return result, nil
}

func writeQuestionSummary(sb *strings.Builder, key string, q *QuestionBlock) {
	sb.WriteString(fmt.Sprintf("Key: %s\n", key))
	sb.WriteString(fmt.Sprintf("Question: %s\n", q.Body))
	if len(q.Options) > 0 {
		sb.WriteString("Options:\n")
		for i, option := range q.Options {
			marker := " "
			if option.Correct {
				marker = "*"
			}
			sb.WriteString(fmt.Sprintf("%s%d. %s\n", marker, i+1, option.Text))
		}
	}
	sb.WriteString("\n")
}

func (nd *NearDupChecker) buildEvaluationCriteria() string {
	return `Evaluation criteria for duplicates:

1. EXACT DUPLICATES: Same question text, same options, same correct answer
2. NEAR-DUPLICATES:
   - Same concept tested but different wording
   - Same question with minor rephrasing
   - Same topic with very similar answer choices
   - Questions that test the same knowledge point
3. NOT DUPLICATES:
   - Different aspects of the same topic
   - Different difficulty levels
   - Different approaches to testing knowledge
   - Questions that test related but distinct concepts

Consider both the question text and the answer choices when determining duplicates.
If the new question is a duplicate, provide the key of the existing question it duplicates.

Decide whether the new question is a duplicate of any existing question.`
}

package masteryls

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ReviewLogger handles logging of all LLM interactions in a review run
type ReviewLogger struct {
	file  *os.File
	mu    sync.Mutex
	runID string
}

// NewReviewLogger creates a new logger with a fresh run id
func NewReviewLogger(corpusRoot string, numQuestions int) (*ReviewLogger, error) {
	// Ensure log directory exists
	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runID := uuid.NewString()
	filename := filepath.Join("log", fmt.Sprintf("review-%s.log", runID))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &ReviewLogger{
		file:  file,
		runID: runID,
	}

	// Write header with run parameters
	logger.Logf("=== Question Review Log ===\n")
	logger.Logf("Run ID: %s\n", runID)
	logger.Logf("Corpus: %s\n", corpusRoot)
	logger.Logf("Questions: %d\n", numQuestions)
	logger.Logf("Started: %s\n", time.Now().Format(time.RFC3339))
	logger.Logf("========================\n\n")

	return logger, nil
}

// RunID returns the id of this review run
func (rl *ReviewLogger) RunID() string {
	return rl.runID
}

// Logf writes a formatted log entry with timestamp
func (rl *ReviewLogger) Logf(format string, args ...interface{}) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(rl.file, "[%s] %s", timestamp, message)
	rl.file.Sync()
}

// LogLLMRequest logs an LLM request
func (rl *ReviewLogger) LogLLMRequest(module, prompt string) {
	rl.Logf("=== LLM REQUEST (%s) ===\n", module)
	rl.Logf("Prompt:\n%s\n", prompt)
	rl.Logf("=====================\n\n")
}

// LogLLMResponse logs an LLM response
func (rl *ReviewLogger) LogLLMResponse(module, response string) {
	rl.Logf("=== LLM RESPONSE (%s) ===\n", module)
	rl.Logf("Response:\n%s\n", response)
	rl.Logf("======================\n\n")
}

// LogQuestionResult logs the verdict for one question
func (rl *ReviewLogger) LogQuestionResult(key, verdict, reason string) {
	rl.Logf("Question %s: %s - %s\n", key, verdict, reason)
}

// LogDedupResult logs the result of a near-duplicate check
func (rl *ReviewLogger) LogDedupResult(key string, isDuplicate bool, reason, duplicateOf string) {
	if isDuplicate {
		rl.Logf("Question %s: DUPLICATE of %s - %s\n", key, duplicateOf, reason)
	} else {
		rl.Logf("Question %s: UNIQUE - %s\n", key, reason)
	}
}

// Close closes the log file
func (rl *ReviewLogger) Close() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.file != nil {
		fmt.Fprintf(rl.file, "[%s] === Review Run Complete ===\n", time.Now().Format("15:04:05.000"))
		return rl.file.Close()
	}
	return nil
}

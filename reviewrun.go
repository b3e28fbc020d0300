package masteryls

import (
	"context"
	"fmt"
	"log"
)

// ReviewRunner orchestrates the LLM review pass over a question bank
type ReviewRunner struct {
	reviewer *QuestionReviewer
	dedup    *NearDupChecker
	queue    *ReviewQueue
	logger   *ReviewLogger
}

// NewReviewRunner creates a review runner. The dedup pass is optional,
// pass checkDups=false to skip it.
func NewReviewRunner(apiKey string, checkDups bool, logger *ReviewLogger) *ReviewRunner {
	runner := &ReviewRunner{
		reviewer: NewQuestionReviewer(apiKey),
		queue:    NewReviewQueue(),
		logger:   logger,
	}
	if checkDups {
		runner.dedup = NewNearDupChecker(apiKey)
	}
	return runner
}

// ReviewReport summarizes a completed review run
type ReviewReport struct {
	Accepted   []ReviewResult  `json:"accepted"`
	Flagged    []ReviewResult  `json:"flagged"`
	Duplicates []NearDupResult `json:"duplicates,omitempty"`
	Failed     int             `json:"failed"` // questions whose review errored out
}

// Run reviews up to limit questions from the bank (0 means all) and
// returns the tally. Review errors on individual questions are counted
// and logged, not fatal; an exhausted context ends the run early.
func (rr *ReviewRunner) Run(ctx context.Context, bank *Bank, limit int) (*ReviewReport, error) {
	questions := bank.Questions()
	if limit > 0 && limit < len(questions) {
		questions = questions[:limit]
	}
	for _, q := range questions {
		rr.queue.Add(q)
	}

	log.Printf("Starting review run: %d questions", rr.queue.Size())

	report := &ReviewReport{}
	for !rr.queue.IsEmpty() {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("review run interrupted: %w", err)
		}

		question := rr.queue.Get()
		if question == nil {
			break
		}

		if rr.dedup != nil {
			dupResult, err := rr.dedup.CheckDuplicate(ctx, question, rr.logger)
			if err != nil {
				log.Printf("Error checking duplicates for %s: %v", question.Key(), err)
				report.Failed++
				continue
			}
			if dupResult.IsDuplicate {
				report.Duplicates = append(report.Duplicates, *dupResult)
				continue
			}
		}

		result, err := rr.reviewer.ReviewQuestion(ctx, question, rr.logger)
		if err != nil {
			log.Printf("Error reviewing question %s: %v", question.Key(), err)
			report.Failed++
			continue
		}

		switch result.Verdict {
		case VerdictAccept:
			report.Accepted = append(report.Accepted, *result)
		case VerdictFlag:
			report.Flagged = append(report.Flagged, *result)
		default:
			log.Printf("Unexpected verdict %q for question %s", result.Verdict, question.Key())
			report.Failed++
		}
	}

	log.Printf("Review run complete: %d accepted, %d flagged, %d duplicates, %d failed",
		len(report.Accepted), len(report.Flagged), len(report.Duplicates), report.Failed)
	return report, nil
}

package masteryls

import "sync"

// ReviewQueue manages a FIFO queue of questions awaiting review. Review
// workers drain it concurrently, so access is guarded.
type ReviewQueue struct {
	mu        sync.RWMutex
	questions map[string]*QuestionBlock
	queue     []string // FIFO queue of bank keys
}

// NewReviewQueue creates a new review queue
func NewReviewQueue() *ReviewQueue {
	return &ReviewQueue{
		questions: make(map[string]*QuestionBlock),
		queue:     make([]string, 0),
	}
}

// Add adds a question to the queue
func (rq *ReviewQueue) Add(question *QuestionBlock) {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	key := question.Key()
	if _, ok := rq.questions[key]; ok {
		return
	}
	rq.questions[key] = question
	rq.queue = append(rq.queue, key)
}

// Get retrieves the next question from the queue, nil when empty
func (rq *ReviewQueue) Get() *QuestionBlock {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	if len(rq.queue) == 0 {
		return nil
	}

	key := rq.queue[0]
	rq.queue = rq.queue[1:]

	question := rq.questions[key]
	delete(rq.questions, key)

	return question
}

// Size returns the number of queued questions
func (rq *ReviewQueue) Size() int {
	rq.mu.RLock()
	defer rq.mu.RUnlock()
	return len(rq.queue)
}

// IsEmpty returns true if the queue is empty
func (rq *ReviewQueue) IsEmpty() bool {
	return rq.Size() == 0
}

package masteryls

import (
	"fmt"
	"sync"
)

// Bank aggregates validated questions from every source file. It keeps
// insertion order (file order, then block order) for deterministic
// downstream consumption and a key index for single-question lookup.
// A Bank is an explicit value passed through the pipeline, not package
// state, so independent corpora can be processed side by side.
type Bank struct {
	mu        sync.RWMutex
	questions map[string]*QuestionBlock
	order     []string
}

// NewBank creates an empty question bank
func NewBank() *Bank {
	return &Bank{
		questions: make(map[string]*QuestionBlock),
		order:     make([]string, 0),
	}
}

// Add inserts a question under its key. When the key is already taken the
// first-seen question stays in the bank and a duplicate-id diagnostic is
// returned naming the winner; insertion order across files makes the
// outcome deterministic.
func (b *Bank) Add(q *QuestionBlock) *Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := q.Key()
	if existing, ok := b.questions[key]; ok {
		return &Diagnostic{
			Kind:    KindDuplicateID,
			File:    q.File,
			Line:    q.Line,
			Message: fmt.Sprintf("id %q already used at %s:%d, keeping the first occurrence", key, existing.File, existing.Line),
		}
	}

	b.questions[key] = q
	b.order = append(b.order, key)
	return nil
}

// Get retrieves a question by key
func (b *Bank) Get(key string) (*QuestionBlock, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	q, ok := b.questions[key]
	return q, ok
}

// Questions returns all questions in insertion order
func (b *Bank) Questions() []*QuestionBlock {
	b.mu.RLock()
	defer b.mu.RUnlock()

	questions := make([]*QuestionBlock, 0, len(b.order))
	for _, key := range b.order {
		questions = append(questions, b.questions[key])
	}
	return questions
}

// Keys returns all bank keys in insertion order
func (b *Bank) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, len(b.order))
	copy(keys, b.order)
	return keys
}

// Size returns the number of questions in the bank
func (b *Bank) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

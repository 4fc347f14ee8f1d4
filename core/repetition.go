package interview

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// AskedQuestions tracks every question the interviewer has asked so far.
// Membership is keyed on the normalized (case-folded, trimmed) question
// text. The set only ever grows within a session.
type AskedQuestions struct {
	mu        sync.RWMutex
	questions map[string]struct{}
}

func NewAskedQuestions() *AskedQuestions {
	return &AskedQuestions{questions: map[string]struct{}{}}
}

// IsDuplicate reports whether at least one question fragment of text has
// already been asked.
func (a *AskedQuestions) IsDuplicate(text string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, question := range ExtractQuestions(text) {
		if _, ok := a.questions[normalizeQuestion(question)]; ok {
			return true
		}
	}
	return false
}

// Record adds every question fragment of text to the set. Re-recording an
// already known question has no effect.
func (a *AskedQuestions) Record(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, question := range ExtractQuestions(text) {
		a.questions[normalizeQuestion(question)] = struct{}{}
	}
}

func (a *AskedQuestions) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.questions)
}

// Questions returns the normalized questions in stable order, for prompt
// interpolation.
func (a *AskedQuestions) Questions() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return slices.Sorted(maps.Keys(a.questions))
}

func normalizeQuestion(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

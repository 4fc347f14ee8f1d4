package interview

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hirevox/screener/core/llms"
	"github.com/jinzhu/copier"
)

// Turn is one finalized conversation turn. Turns are never mutated or
// removed once appended.
type Turn struct {
	ID      string
	Role    llms.Role
	Content string
}

// Memory is the append-only conversation log. Model context is built from a
// read-only suffix view of it.
type Memory struct {
	mu    sync.RWMutex
	turns []Turn
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(role llms.Role, content string) Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	turn := Turn{ID: uuid.NewString(), Role: role, Content: content}
	m.turns = append(m.turns, turn)
	return turn
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.turns)
}

// Window returns the last n turns as model messages. The returned slice is a
// copy; mutating it does not affect the log.
func (m *Memory) Window(n int) []llms.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := len(m.turns) - n
	if start < 0 {
		start = 0
	}

	messages := []llms.Message{}
	copier.Copy(&messages, m.turns[start:])
	return messages
}

// History returns a copy of the full log.
func (m *Memory) History() []Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := make([]Turn, len(m.turns))
	copy(history, m.turns)
	return history
}

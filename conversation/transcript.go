package conversation

import (
	"sync"
	"time"
)

// Role identifies who produced a turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the conversation
type Turn struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Transcript accumulates turns in chronological order
type Transcript struct {
	turns    []Turn
	maxTurns int
	mu       sync.Mutex
}

// NewTranscript creates a transcript keeping at most maxTurns turns.
// Zero or less keeps everything.
func NewTranscript(maxTurns int) *Transcript {
	return &Transcript{
		turns:    make([]Turn, 0),
		maxTurns: maxTurns,
	}
}

// Append records a turn, dropping the oldest one when the transcript is full
func (t *Transcript) Append(role Role, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.turns = append(t.turns, Turn{Role: role, Content: content, At: time.Now()})
	if t.maxTurns > 0 && len(t.turns) > t.maxTurns {
		t.turns = append(make([]Turn, 0, t.maxTurns), t.turns[len(t.turns)-t.maxTurns:]...)
	}
}

// Last returns up to n most recent turns, oldest first
func (t *Transcript) Last(n int) []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n <= 0 {
		return nil
	}
	start := len(t.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(t.turns)-start)
	copy(out, t.turns[start:])
	return out
}

// All returns every recorded turn
func (t *Transcript) All() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of recorded turns
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}

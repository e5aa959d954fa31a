package order

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// StatusConfirmed is the status given to every placed order
const StatusConfirmed = "confirmed"

// CompletedOrder is an immutable record of a placed order
type CompletedOrder struct {
	Number   int       `json:"orderNumber"`
	Items    []Line    `json:"items"`
	Status   string    `json:"status"`
	PlacedAt time.Time `json:"placedAt"`
}

// Store holds the pending order of one session together with the
// orders already placed in that session
type Store struct {
	lines     []Line
	completed []CompletedOrder
	mu        sync.Mutex
}

// NewStore creates an empty order store
func NewStore() *Store {
	return &Store{
		lines: make([]Line, 0),
	}
}

// Add appends a line to the pending order. No menu validation happens here.
func (s *Store) Add(line Line) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = append(s.lines, line.clone())
	return fmt.Sprintf("Added '%s' to your order.", line)
}

// Get describes the pending order
func (s *Store) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return "Your order is currently empty."
	}
	return "Current order: " + joinLines(s.lines)
}

// Clear empties the pending order
func (s *Store) Clear() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make([]Line, 0)
	return "Order cleared."
}

// Confirm renders the pending order as a numbered list for the customer to
// check. It does not change the order.
func (s *Store) Confirm() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return "Your order is empty. Please add some items first."
	}

	var b strings.Builder
	b.WriteString("\n🧾 Here’s what I’ve got for your order so far:\n")
	for i, l := range s.lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, l)
	}
	b.WriteString("\nIf everything looks good, just say ‘confirm’ and I’ll place it. ")
	b.WriteString("If you want to tweak anything, tell me what to change.")
	return b.String()
}

// Place turns the pending order into the next numbered CompletedOrder and
// empties it. An empty order is not placed and the returned record is nil.
func (s *Store) Place() (string, *CompletedOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return "Cannot place empty order.", nil
	}

	placed := CompletedOrder{
		Number:   len(s.completed) + 1,
		Items:    s.lines,
		Status:   StatusConfirmed,
		PlacedAt: time.Now(),
	}
	s.completed = append(s.completed, placed)
	s.lines = make([]Line, 0)

	msg := fmt.Sprintf("🎉 Order #%d placed successfully! Your order: %s", placed.Number, joinLines(placed.Items))
	return msg, placed.clone()
}

// Lines returns a copy of the pending order
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.lines)
}

// Len returns the number of pending lines
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// IsEmpty returns true if nothing is pending
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Completed returns a copy of the placed orders, oldest first
func (s *Store) Completed() []CompletedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CompletedOrder, len(s.completed))
	for i := range s.completed {
		out[i] = *s.completed[i].clone()
	}
	return out
}

func (c CompletedOrder) clone() *CompletedOrder {
	c.Items = cloneLines(c.Items)
	return &c
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = l.clone()
	}
	return out
}

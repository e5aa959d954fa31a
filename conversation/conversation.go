package conversation

import (
	"sync"
	"time"

	"github.com/room4-2/BaristaBot/order"
)

// Conversation is the state owned by one chat session: its transcript,
// its pending order and the orders it has placed
type Conversation struct {
	ID         string
	Transcript *Transcript
	Orders     *order.Store
	CreatedAt  time.Time

	// Serializes turns of the same conversation
	turnMu sync.Mutex
}

// New creates a conversation seeded with the welcome message
func New(id string, maxTurns int) *Conversation {
	c := &Conversation{
		ID:         id,
		Transcript: NewTranscript(maxTurns),
		Orders:     order.NewStore(),
		CreatedAt:  time.Now(),
	}
	c.Transcript.Append(RoleAssistant, WelcomeMessage)
	return c
}

// ShortID returns the ID prefix used in log lines
func (c *Conversation) ShortID() string {
	if len(c.ID) > 8 {
		return c.ID[:8]
	}
	return c.ID
}

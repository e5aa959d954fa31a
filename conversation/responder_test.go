package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/room4-2/BaristaBot/menu"
	"github.com/room4-2/BaristaBot/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type fakePublisher struct {
	conversationID string
	orders         []order.CompletedOrder
	err            error
}

func (p *fakePublisher) PublishOrder(ctx context.Context, conversationID string, placed order.CompletedOrder) error {
	p.conversationID = conversationID
	p.orders = append(p.orders, placed)
	return p.err
}

func newTestResponder(gen Generator, opts ...Option) *Responder {
	return NewResponder(gen, menu.Default(), opts...)
}

func TestHandleTurnAddsItems(t *testing.T) {
	gen := &fakeGenerator{reply: "Coming right up!"}
	r := newTestResponder(gen)
	c := New("conv-1", 0)

	reply := r.HandleTurn(context.Background(), c, "I want a latte with oat milk")

	assert.True(t, strings.HasPrefix(reply, "Coming right up!"))
	assert.Contains(t, reply, "✅ Added to your order: Latte with Oat Milk")
	assert.Contains(t, reply, "📋 Current order: Latte with Oat Milk")

	lines := c.Orders.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Latte with Oat Milk", lines[0].String())
}

func TestHandleTurnConfirmPlacesOrder(t *testing.T) {
	gen := &fakeGenerator{reply: "Thanks!"}
	pub := &fakePublisher{}
	r := newTestResponder(gen, WithPublisher(pub))
	c := New("conv-2", 0)
	c.Orders.Add(order.Line{Kind: order.KindDrink, Name: "Mocha"})

	reply := r.HandleTurn(context.Background(), c, "confirm")

	assert.Contains(t, reply, "🎉 Order #1 placed successfully! Your order: Mocha")
	assert.Equal(t, "Your order is currently empty.", c.Orders.Get())

	require.Len(t, pub.orders, 1)
	assert.Equal(t, "conv-2", pub.conversationID)
	assert.Equal(t, 1, pub.orders[0].Number)
}

func TestHandleTurnConfirmEmptyOrder(t *testing.T) {
	pub := &fakePublisher{}
	r := newTestResponder(&fakeGenerator{reply: "Sure."}, WithPublisher(pub))
	c := New("conv-3", 0)

	reply := r.HandleTurn(context.Background(), c, "yes")

	assert.Equal(t, "Sure.", reply)
	assert.Empty(t, pub.orders)
	assert.Empty(t, c.Orders.Completed())
}

func TestHandleTurnPublishFailureKeepsOrder(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	r := newTestResponder(&fakeGenerator{reply: "Done."}, WithPublisher(pub))
	c := New("conv-4", 0)
	c.Orders.Add(order.Line{Kind: order.KindPastry, Name: "Scone"})

	reply := r.HandleTurn(context.Background(), c, "place order")

	assert.Contains(t, reply, "Order #1 placed successfully")
	assert.Len(t, c.Orders.Completed(), 1)
}

func TestHandleTurnMenuShortCircuits(t *testing.T) {
	r := newTestResponder(&fakeGenerator{reply: "Here you go."})
	c := New("conv-5", 0)
	c.Orders.Add(order.Line{Kind: order.KindDrink, Name: "Espresso"})

	reply := r.HandleTurn(context.Background(), c, "show menu, I want a latte and clear my order")

	assert.Equal(t, menu.Default().Text(), reply)
	assert.Equal(t, "Current order: Espresso", c.Orders.Get())
}

func TestHandleTurnClear(t *testing.T) {
	r := newTestResponder(&fakeGenerator{reply: "No problem."})
	c := New("conv-6", 0)
	c.Orders.Add(order.Line{Kind: order.KindDrink, Name: "Latte"})

	reply := r.HandleTurn(context.Background(), c, "start over")

	assert.Equal(t, "No problem.\n\nOrder cleared.", reply)
	assert.True(t, c.Orders.IsEmpty())
}

func TestHandleTurnSummary(t *testing.T) {
	r := newTestResponder(&fakeGenerator{reply: "Let me check."})
	c := New("conv-7", 0)

	reply := r.HandleTurn(context.Background(), c, "how much?")
	assert.Equal(t, "Let me check.", reply, "no receipt for an empty order")

	c.Orders.Add(order.Line{Kind: order.KindDrink, Name: "Latte", Modifiers: []string{"Oat Milk", "Vanilla Syrup"}})
	c.Orders.Add(order.Line{Kind: order.KindPastry, Name: "Muffin"})

	reply = r.HandleTurn(context.Background(), c, "what's the total?")
	assert.Contains(t, reply, "🧾 Order Summary:")
	assert.Contains(t, reply, "- Latte with Oat Milk, Vanilla Syrup — $5.50")
	assert.Contains(t, reply, "- Muffin — $2.75")
	assert.True(t, strings.HasSuffix(reply, "Total: $8.25"))

	assert.Equal(t, "8.25", r.Total(c.Orders).StringFixed(2))
}

func TestHandleTurnModelError(t *testing.T) {
	r := newTestResponder(&fakeGenerator{err: errors.New("quota exceeded")})
	c := New("conv-8", 0)

	reply := r.HandleTurn(context.Background(), c, "I want a latte")

	assert.Equal(t, "Sorry, I'm having trouble processing your request. Could you please try again? (Error: quota exceeded)", reply)
	assert.True(t, c.Orders.IsEmpty())
}

func TestHandleTurnEmptyModelReply(t *testing.T) {
	r := newTestResponder(&fakeGenerator{reply: "  \n"})
	c := New("conv-9", 0)

	assert.Equal(t, FallbackReply, r.HandleTurn(context.Background(), c, "hmm"))
}

func TestHandleTurnSanitizesReply(t *testing.T) {
	r := newTestResponder(&fakeGenerator{reply: "Great choice! add_to_order(\"Latte\") Anything else?"})
	c := New("conv-10", 0)

	reply := r.HandleTurn(context.Background(), c, "hello")

	assert.NotContains(t, reply, "add_to_order")
	assert.Contains(t, reply, "Great choice!")
	assert.Contains(t, reply, "Anything else?")
}

func TestConverseRecordsTranscript(t *testing.T) {
	gen := &fakeGenerator{reply: "Hi!"}
	r := newTestResponder(gen)
	c := New("conv-11", 0)

	reply := r.Converse(context.Background(), c, "hello")
	assert.Equal(t, "Hi!", reply)

	turns := c.Transcript.All()
	require.Len(t, turns, 3)
	assert.Equal(t, RoleAssistant, turns[0].Role)
	assert.Equal(t, WelcomeMessage, turns[0].Content)
	assert.Equal(t, Turn{Role: RoleUser, Content: "hello", At: turns[1].At}, turns[1])
	assert.Equal(t, RoleAssistant, turns[2].Role)
	assert.Equal(t, "Hi!", turns[2].Content)
}

func TestPromptUsesRecentHistory(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	r := newTestResponder(gen, WithHistoryTurns(4))
	c := New("conv-12", 0)

	for _, msg := range []string{"first", "second", "third"} {
		r.Converse(context.Background(), c, msg)
	}
	c.Orders.Add(order.Line{Kind: order.KindDrink, Name: "Americano"})
	r.Converse(context.Background(), c, "fourth")

	prompt := gen.lastPrompt()
	assert.True(t, strings.HasPrefix(prompt, SystemInstructions(menu.Default())))
	assert.Contains(t, prompt, "Current order: Americano")
	assert.Contains(t, prompt, "Conversation so far:\nAssistant: ok\nUser: third\nAssistant: ok\nUser: fourth")
	assert.NotContains(t, prompt, "second")
	assert.True(t, strings.HasSuffix(prompt, "User: fourth\nAssistant:"))
}

func TestPromptEmptyOrder(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	r := newTestResponder(gen)
	c := New("conv-13", 0)

	r.Converse(context.Background(), c, "hi")

	assert.Contains(t, gen.lastPrompt(), "Current order: empty")
	assert.Contains(t, gen.lastPrompt(), "Assistant: "+WelcomeMessage)
}

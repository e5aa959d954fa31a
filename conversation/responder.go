package conversation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/room4-2/BaristaBot/intent"
	"github.com/room4-2/BaristaBot/menu"
	"github.com/room4-2/BaristaBot/order"

	"github.com/shopspring/decimal"
)

// DefaultHistoryTurns is how many past turns go into each prompt
const DefaultHistoryTurns = 8

// Generator produces model text for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OrderPublisher receives every order placed during a conversation
type OrderPublisher interface {
	PublishOrder(ctx context.Context, conversationID string, placed order.CompletedOrder) error
}

// Responder combines the model reply with the order side effects of a turn
type Responder struct {
	gen          Generator
	menu         *menu.Menu
	classifier   *intent.Classifier
	instructions string
	historyTurns int
	publisher    OrderPublisher
}

// Option configures a Responder
type Option func(*Responder)

// WithHistoryTurns sets how many transcript turns go into the prompt
func WithHistoryTurns(n int) Option {
	return func(r *Responder) {
		if n > 0 {
			r.historyTurns = n
		}
	}
}

// WithPublisher hands placed orders to p
func WithPublisher(p OrderPublisher) Option {
	return func(r *Responder) {
		r.publisher = p
	}
}

// WithKeywords replaces the intent vocabulary
func WithKeywords(kw intent.Keywords) Option {
	return func(r *Responder) {
		r.classifier = intent.NewClassifier(r.menu, kw)
	}
}

// NewResponder creates a responder for the given menu
func NewResponder(gen Generator, m *menu.Menu, opts ...Option) *Responder {
	r := &Responder{
		gen:          gen,
		menu:         m,
		classifier:   intent.NewClassifier(m, intent.DefaultKeywords()),
		instructions: SystemInstructions(m),
		historyTurns: DefaultHistoryTurns,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Converse records the user's message, answers it and records the answer
func (r *Responder) Converse(ctx context.Context, c *Conversation, userText string) string {
	c.turnMu.Lock()
	defer c.turnMu.Unlock()

	c.Transcript.Append(RoleUser, userText)
	reply := r.HandleTurn(ctx, c, userText)
	c.Transcript.Append(RoleAssistant, reply)
	return reply
}

// HandleTurn asks the model for a reply and applies the order operations
// implied by userText. It never fails: errors become apology text.
func (r *Responder) HandleTurn(ctx context.Context, c *Conversation, userText string) string {
	prompt := BuildPrompt(r.instructions, currentOrder(c.Orders), c.Transcript.Last(r.historyTurns), userText)

	text, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		log.Printf("❌ [%s] Model call failed: %v", c.ShortID(), err)
		return fmt.Sprintf("Sorry, I'm having trouble processing your request. Could you please try again? (Error: %v)", err)
	}
	if strings.TrimSpace(text) == "" {
		text = FallbackReply
	}
	reply := Sanitize(text)

	intents := r.classifier.Classify(userText)
	if len(intents) > 0 {
		log.Printf("🔧 [%s] Intents: %v", c.ShortID(), intents)
	}

	for _, in := range intents {
		switch in {
		case intent.ShowMenu:
			return r.menu.Text()

		case intent.AddItems:
			reply += r.addItems(c, userText)

		case intent.PlaceOrder:
			if c.Orders.IsEmpty() {
				continue
			}
			msg, placed := c.Orders.Place()
			reply += "\n\n" + msg
			if placed != nil {
				r.publish(ctx, c, *placed)
			}

		case intent.ClearOrder:
			reply += "\n\n" + c.Orders.Clear()

		case intent.Summarize:
			reply += r.summary(c.Orders)
		}
	}

	return reply
}

func (r *Responder) addItems(c *Conversation, userText string) string {
	lines := r.classifier.DetectItems(userText)
	if len(lines) == 0 {
		return ""
	}

	names := make([]string, len(lines))
	for i, l := range lines {
		c.Orders.Add(l)
		names[i] = l.String()
	}
	log.Printf("🛒 [%s] Added %d item(s): %s", c.ShortID(), len(lines), strings.Join(names, ", "))

	return fmt.Sprintf("\n\n✅ Added to your order: %s\n📋 %s\n%s",
		strings.Join(names, ", "),
		c.Orders.Get(),
		"Would you like anything else? You can say ‘order summary’ to see your bill, or ‘confirm’ when you’re ready.",
	)
}

func (r *Responder) summary(store *order.Store) string {
	lines := store.Lines()
	if len(lines) == 0 {
		return ""
	}

	rows := make([]string, len(lines))
	total := decimal.Zero
	for i, l := range lines {
		price := r.menu.LinePrice(l)
		total = total.Add(price)
		rows[i] = fmt.Sprintf("- %s — %s", l, menu.FormatPrice(price))
	}
	return fmt.Sprintf("\n\n🧾 Order Summary:\n%s\n\nTotal: %s", strings.Join(rows, "\n"), menu.FormatPrice(total))
}

func (r *Responder) publish(ctx context.Context, c *Conversation, placed order.CompletedOrder) {
	log.Printf("🎉 [%s] Order #%d placed (%d item(s))", c.ShortID(), placed.Number, len(placed.Items))
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishOrder(ctx, c.ID, placed); err != nil {
		log.Printf("⚠️ [%s] Failed to hand order #%d to the kitchen: %v", c.ShortID(), placed.Number, err)
	}
}

// Total prices the pending order of store
func (r *Responder) Total(store *order.Store) decimal.Decimal {
	total := decimal.Zero
	for _, l := range store.Lines() {
		total = total.Add(r.menu.LinePrice(l))
	}
	return total
}

// Menu returns the menu the responder prices against
func (r *Responder) Menu() *menu.Menu {
	return r.menu
}

func currentOrder(store *order.Store) string {
	lines := store.Lines()
	if len(lines) == 0 {
		return "empty"
	}
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.String()
	}
	return strings.Join(names, ", ")
}

package kitchen

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/room4-2/BaristaBot/menu"
	"github.com/room4-2/BaristaBot/order"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

// OrdersQueue receives every placed order
const OrdersQueue = "kitchen.orders"

const publishTimeout = 3 * time.Second

// Ticket is the message the kitchen receives for a placed order
type Ticket struct {
	EventType      string       `json:"eventType"`
	ConversationID string       `json:"conversationId"`
	OrderNumber    int          `json:"orderNumber"`
	Items          []TicketItem `json:"items"`
	Total          string       `json:"total"`
	Status         string       `json:"status"`
	PlacedAt       time.Time    `json:"placedAt"`
}

// TicketItem is one line of a Ticket
type TicketItem struct {
	Kind      order.Kind `json:"kind"`
	Name      string     `json:"name"`
	Modifiers []string   `json:"modifiers,omitempty"`
	Display   string     `json:"display"`
	Price     string     `json:"price"`
}

// NewTicket prices a placed order against m
func NewTicket(m *menu.Menu, conversationID string, placed order.CompletedOrder) Ticket {
	t := Ticket{
		EventType:      "OrderPlaced",
		ConversationID: conversationID,
		OrderNumber:    placed.Number,
		Status:         placed.Status,
		PlacedAt:       placed.PlacedAt.UTC(),
	}

	total := decimal.Zero
	for _, l := range placed.Items {
		price := m.LinePrice(l)
		total = total.Add(price)
		t.Items = append(t.Items, TicketItem{
			Kind:      l.Kind,
			Name:      l.Name,
			Modifiers: l.Modifiers,
			Display:   l.String(),
			Price:     price.StringFixed(2),
		})
	}
	t.Total = total.StringFixed(2)
	return t
}

// Publisher sends placed orders to the kitchen queue on RabbitMQ
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	menu *menu.Menu
}

// Dial connects to RabbitMQ and declares the kitchen queue
func Dial(url string, m *menu.Menu) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(OrdersQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s: %w", OrdersQueue, err)
	}

	log.Printf("✅ Kitchen queue ready: %s", OrdersQueue)
	return &Publisher{conn: conn, ch: ch, menu: m}, nil
}

// PublishOrder sends a placed order as a persistent JSON message
func (p *Publisher) PublishOrder(ctx context.Context, conversationID string, placed order.CompletedOrder) error {
	body, err := sonic.Marshal(NewTicket(p.menu, conversationID, placed))
	if err != nil {
		return fmt.Errorf("marshal ticket: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		pubCtx,
		"",          // default exchange
		OrdersQueue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish order #%d: %w", placed.Number, err)
	}

	log.Printf("📤 Sent order #%d to the kitchen", placed.Number)
	return nil
}

// Close releases the channel and connection
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

package intent

import (
	"strings"

	"github.com/room4-2/BaristaBot/menu"
	"github.com/room4-2/BaristaBot/order"
)

// Intent is an order operation implied by an utterance
type Intent int

const (
	ShowMenu Intent = iota
	AddItems
	PlaceOrder
	ClearOrder
	Summarize
)

func (i Intent) String() string {
	switch i {
	case ShowMenu:
		return "show_menu"
	case AddItems:
		return "add_items"
	case PlaceOrder:
		return "place_order"
	case ClearOrder:
		return "clear_order"
	case Summarize:
		return "summarize"
	default:
		return "unknown"
	}
}

type check struct {
	intent Intent
	words  []string
}

// Classifier decides which order operations an utterance triggers
type Classifier struct {
	menu   *menu.Menu
	checks []check
}

// NewClassifier creates a classifier over the given menu and vocabulary
func NewClassifier(m *menu.Menu, kw Keywords) *Classifier {
	kw = kw.withDefaults()
	return &Classifier{
		menu: m,
		checks: []check{
			{ShowMenu, kw.Menu},
			{AddItems, kw.Order},
			{PlaceOrder, kw.Confirm},
			{ClearOrder, kw.Reset},
			{Summarize, kw.Summary},
		},
	}
}

// Classify runs every check independently and returns the intents that
// fired, in evaluation order. A menu request is returned on its own.
func (c *Classifier) Classify(text string) []Intent {
	lower := strings.ToLower(text)

	var fired []Intent
	for _, ch := range c.checks {
		if !containsAny(lower, ch.words) {
			continue
		}
		if ch.intent == ShowMenu {
			return []Intent{ShowMenu}
		}
		fired = append(fired, ch.intent)
	}
	return fired
}

// DetectItems extracts order lines from an utterance: every drink found,
// each carrying all modifiers mentioned, followed by every pastry found.
func (c *Classifier) DetectItems(text string) []order.Line {
	var mods []string
	for _, m := range c.menu.FindModifiers(text) {
		mods = append(mods, m.Item.Name)
	}

	var drinks, pastries []order.Line
	for _, m := range c.menu.FindBase(text) {
		switch m.Item.Category {
		case menu.Drink:
			line := order.Line{Kind: order.KindDrink, Name: m.Item.Name}
			if len(mods) > 0 {
				line.Modifiers = append([]string(nil), mods...)
			}
			drinks = append(drinks, line)
		case menu.Pastry:
			pastries = append(pastries, order.Line{Kind: order.KindPastry, Name: m.Item.Name})
		}
	}
	return append(drinks, pastries...)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

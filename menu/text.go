package menu

import (
	"fmt"
	"strings"
)

// Text renders the menu shown to customers when they ask for it
func (m *Menu) Text() string {
	var b strings.Builder
	b.WriteString("Here’s our menu!\n\n")

	b.WriteString("☕ Drinks:\n")
	writeItems(&b, m.drinks)
	b.WriteString("\n🍰 Pastries:\n")
	writeItems(&b, m.pastries)
	b.WriteString("\n🥛 Modifiers:\n")
	writeItems(&b, m.modifiers)

	b.WriteString("\nTell me what you’d like, and I’ll add it.")
	return b.String()
}

// PromptText renders the MENU block embedded in the system instructions
func (m *Menu) PromptText() string {
	var b strings.Builder
	b.WriteString("MENU:\n")
	b.WriteString("☕ DRINKS:\n")
	writeItems(&b, m.drinks)
	b.WriteString("\n🥛 MODIFIERS:\n")
	writeItems(&b, m.modifiers)
	b.WriteString("\n🍰 PASTRIES:\n")
	writeItems(&b, m.pastries)
	return b.String()
}

func writeItems(b *strings.Builder, items []Item) {
	for _, it := range items {
		fmt.Fprintf(b, "- %s (%s)\n", it.Name, priceLabel(it))
	}
}

func priceLabel(it Item) string {
	if it.Category != Modifier {
		return FormatPrice(it.Price)
	}
	if it.Price.IsZero() {
		return "no charge"
	}
	return "+" + FormatPrice(it.Price)
}

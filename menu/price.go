package menu

import (
	"strings"

	"github.com/room4-2/BaristaBot/order"

	"github.com/shopspring/decimal"
)

// Price derives a line price from a free-text item description.
// Unrecognized text prices at zero instead of failing.
func (m *Menu) Price(text string) decimal.Decimal {
	lower := strings.ToLower(text)

	total := decimal.Zero
	if base, ok := m.longestBase(lower); ok {
		total = total.Add(base.Price)
	}
	for _, mod := range m.FindModifiers(lower) {
		total = total.Add(mod.Item.Price)
	}
	return total.Round(2)
}

// LinePrice prices a structured order line. Names missing from the menu
// fall back to the free-text calculation of the rendered line.
func (m *Menu) LinePrice(line order.Line) decimal.Decimal {
	cat := Drink
	if line.Kind == order.KindPastry {
		cat = Pastry
	}

	base, ok := m.Lookup(cat, line.Name)
	if !ok {
		return m.Price(line.String())
	}

	total := base.Price
	for _, name := range line.Modifiers {
		mod, ok := m.Lookup(Modifier, name)
		if !ok {
			return m.Price(line.String())
		}
		total = total.Add(mod.Price)
	}
	return total.Round(2)
}

// FormatPrice renders an amount as dollars with two decimals
func FormatPrice(p decimal.Decimal) string {
	return "$" + p.StringFixed(2)
}

package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups menu items. The three categories are disjoint.
type Category int

const (
	Drink Category = iota
	Pastry
	Modifier
)

func (c Category) String() string {
	switch c {
	case Drink:
		return "drink"
	case Pastry:
		return "pastry"
	case Modifier:
		return "modifier"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ErrDuplicate is returned when two items of the same category share a name
var ErrDuplicate = errors.New("duplicate menu item")

// Item is a single priced entry of the café menu
type Item struct {
	Name     string
	Category Category
	Price    decimal.Decimal

	// Keywords are the lower-case terms that identify the item in free text.
	// The lower-cased name is always one of them.
	Keywords []string
}

// Menu is the fixed pricing table
type Menu struct {
	drinks    []Item
	pastries  []Item
	modifiers []Item
}

// New builds a menu from items, keeping declaration order per category
func New(items ...Item) (*Menu, error) {
	m := &Menu{}
	seen := make(map[Category]map[string]bool)

	for _, it := range items {
		key := strings.ToLower(strings.TrimSpace(it.Name))
		if key == "" {
			return nil, fmt.Errorf("menu item without a name in category %s", it.Category)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("menu item %q has a negative price", it.Name)
		}
		if seen[it.Category] == nil {
			seen[it.Category] = make(map[string]bool)
		}
		if seen[it.Category][key] {
			return nil, fmt.Errorf("%w: %s %q", ErrDuplicate, it.Category, it.Name)
		}
		seen[it.Category][key] = true

		it.Keywords = normalizeKeywords(key, it.Keywords)

		switch it.Category {
		case Drink:
			m.drinks = append(m.drinks, it)
		case Pastry:
			m.pastries = append(m.pastries, it)
		case Modifier:
			m.modifiers = append(m.modifiers, it)
		default:
			return nil, fmt.Errorf("menu item %q has unknown category %d", it.Name, int(it.Category))
		}
	}

	return m, nil
}

func normalizeKeywords(name string, extra []string) []string {
	out := []string{name}
	for _, kw := range extra {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		dup := false
		for _, have := range out {
			if have == kw {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, kw)
		}
	}
	return out
}

// Default returns the BaristaBot café menu
func Default() *Menu {
	m, err := New(
		drink("Espresso", "2.50"),
		drink("Americano", "3.00"),
		drink("Latte", "4.50"),
		drink("Cappuccino", "4.00"),
		drink("Macchiato", "4.75"),
		drink("Mocha", "5.00"),
		drink("Cold Brew", "3.50"),
		drink("Frappuccino", "5.50"),

		pastry("Croissant", "3.50"),
		pastry("Muffin", "2.75"),
		pastry("Scone", "3.00"),
		pastry("Danish", "3.25"),
		pastry("Bagel", "2.50"),

		modifier("Extra Shot", "0.75"),
		modifier("Decaf", "0"),
		modifier("Oat Milk", "0.50"),
		modifier("Almond Milk", "0.50"),
		modifier("Soy Milk", "0.50"),
		modifier("Extra Hot", "0"),
		modifier("Extra Foam", "0"),
		modifier("Vanilla Syrup", "0.50", "vanilla"),
		modifier("Caramel Syrup", "0.50", "caramel"),
		modifier("Hazelnut Syrup", "0.50", "hazelnut"),
	)
	if err != nil {
		panic(fmt.Sprintf("default menu: %v", err))
	}
	return m
}

func drink(name, price string, keywords ...string) Item {
	return Item{Name: name, Category: Drink, Price: decimal.RequireFromString(price), Keywords: keywords}
}

func pastry(name, price string, keywords ...string) Item {
	return Item{Name: name, Category: Pastry, Price: decimal.RequireFromString(price), Keywords: keywords}
}

func modifier(name, price string, keywords ...string) Item {
	return Item{Name: name, Category: Modifier, Price: decimal.RequireFromString(price), Keywords: keywords}
}

// Items returns a copy of the items in a category
func (m *Menu) Items(c Category) []Item {
	var src []Item
	switch c {
	case Drink:
		src = m.drinks
	case Pastry:
		src = m.pastries
	case Modifier:
		src = m.modifiers
	}
	out := make([]Item, len(src))
	copy(out, src)
	return out
}

// Lookup finds an item by display name (case-insensitive)
func (m *Menu) Lookup(c Category, name string) (Item, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, it := range m.Items(c) {
		if strings.ToLower(it.Name) == key {
			return it, true
		}
	}
	return Item{}, false
}

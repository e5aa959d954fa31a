package order

import "strings"

// Kind distinguishes the two orderable item types
type Kind string

const (
	KindDrink  Kind = "drink"
	KindPastry Kind = "pastry"
)

// Line is one ordered item with the modifiers attached to it
type Line struct {
	Kind      Kind     `json:"kind"`
	Name      string   `json:"name"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// String renders the line for display, e.g. "Latte with Oat Milk, Vanilla Syrup"
func (l Line) String() string {
	if len(l.Modifiers) == 0 {
		return l.Name
	}
	return l.Name + " with " + strings.Join(l.Modifiers, ", ")
}

func (l Line) clone() Line {
	if l.Modifiers != nil {
		l.Modifiers = append([]string(nil), l.Modifiers...)
	}
	return l
}

func joinLines(lines []Line) string {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.String()
	}
	return strings.Join(names, ", ")
}

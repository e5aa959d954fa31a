package menu

import "strings"

// Match is an item found in a piece of free text
type Match struct {
	Item    Item
	Keyword string
	Start   int // byte offset into the lower-cased text
}

// End returns the offset just past the matched keyword
func (mt Match) End() int {
	return mt.Start + len(mt.Keyword)
}

type span struct {
	item       int
	start, end int
}

// FindBase returns the drinks and pastries mentioned in text, drinks first,
// each in menu order. An occurrence lying inside a longer occurrence of a
// different item does not count, so "iced latte" yields only "Iced Latte".
func (m *Menu) FindBase(text string) []Match {
	lower := strings.ToLower(text)
	base := append(m.Items(Drink), m.Items(Pastry)...)

	var spans []span
	for i, it := range base {
		for _, kw := range it.Keywords {
			for _, at := range occurrences(lower, kw) {
				spans = append(spans, span{item: i, start: at, end: at + len(kw)})
			}
		}
	}

	var found []Match
	for i, it := range base {
		for _, s := range spans {
			if s.item != i || covered(s, spans) {
				continue
			}
			found = append(found, Match{Item: it, Keyword: lower[s.start:s.end], Start: s.start})
			break
		}
	}
	return found
}

// FindModifiers returns every modifier mentioned in text, in menu order.
// Modifiers are independent of each other: no longest-match suppression.
func (m *Menu) FindModifiers(text string) []Match {
	lower := strings.ToLower(text)

	var found []Match
	for _, it := range m.modifiers {
		for _, kw := range it.Keywords {
			if at := strings.Index(lower, kw); at >= 0 {
				found = append(found, Match{Item: it, Keyword: kw, Start: at})
				break
			}
		}
	}
	return found
}

// longestBase picks the drink or pastry with the longest keyword in text
func (m *Menu) longestBase(lower string) (Item, bool) {
	var (
		best    Item
		bestLen int
	)
	for _, list := range [][]Item{m.drinks, m.pastries} {
		for _, it := range list {
			for _, kw := range it.Keywords {
				if len(kw) > bestLen && strings.Contains(lower, kw) {
					best, bestLen = it, len(kw)
				}
			}
		}
	}
	return best, bestLen > 0
}

func covered(s span, all []span) bool {
	for _, o := range all {
		if o.item == s.item {
			continue
		}
		if o.start <= s.start && s.end <= o.end && o.end-o.start > s.end-s.start {
			return true
		}
	}
	return false
}

func occurrences(text, kw string) []int {
	var out []int
	for from := 0; from <= len(text)-len(kw); {
		i := strings.Index(text[from:], kw)
		if i < 0 {
			break
		}
		out = append(out, from+i)
		from += i + 1
	}
	return out
}

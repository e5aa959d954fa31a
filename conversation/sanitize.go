package conversation

import "regexp"

// Matches leaked calls like place_order() or add_to_order("Latte")
var toolCallPattern = regexp.MustCompile(`(?i)\b(add_to_order|get_order|confirm_order|place_order|clear_order)\s*\([^)]*\)`)

// Sanitize strips leaked order-operation calls such as "place_order()" from model text
func Sanitize(text string) string {
	return toolCallPattern.ReplaceAllString(text, "")
}

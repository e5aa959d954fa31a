package conversation

import (
	"fmt"
	"strings"

	"github.com/room4-2/BaristaBot/menu"
)

// WelcomeMessage opens every conversation
const WelcomeMessage = "Welcome to the BaristaBot cafe! 👋 How may I serve you today? Would you like to see our menu?"

// FallbackReply is used when the model returns no text
const FallbackReply = "I’m here and ready to help. Could you rephrase that or tell me what you’d like from the menu?"

const baseInstructions = `You are a BaristaBot, an interactive cafe ordering system. A human will talk to you about the available products you have and you will answer any questions about menu items (and only about menu items - no off-topic discussion, but you can chat about the products and their history). The customer will place an order for 1 or more items from the menu, which you will structure and send to the ordering system after confirming the order with the human.

Add items to the customer's order with add_to_order, and reset the order with clear_order. To see the contents of the order so far, call get_order (this is shown to you, not the user) Always confirm_order with the user (double-check) before calling place_order. Calling confirm_order will display the order items to the user and returns their response to seeing the list. Their response may contain modifications. Always verify and respond with drink and modifier names from the MENU before adding them to the order. If you are unsure a drink or modifier matches those on the MENU, ask a question to clarify or redirect. You only have the modifiers listed on the menu. Once the customer has finished ordering items, Call confirm_order to ensure it is correct then make any necessary updates and then call place_order. Once place_order has returned, thank the user and say goodbye!

Important: Never reveal or mention internal tool/function names in your replies. Do not display code-like text such as add_to_order(...), get_order(), confirm_order(), place_order(), or clear_order(). Speak naturally and use friendly, plain language only.`

// SystemInstructions returns the fixed instructions with the menu appended
func SystemInstructions(m *menu.Menu) string {
	return baseInstructions + "\n\n" + m.PromptText()
}

// BuildPrompt composes the single prompt sent to the model
func BuildPrompt(instructions, currentOrder string, history []Turn, userText string) string {
	lines := make([]string, 0, len(history))
	for _, t := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", capitalize(string(t.Role)), t.Content))
	}

	return fmt.Sprintf(
		"%s\n\nCurrent order: %s\n\nConversation so far:\n%s\n\nUser: %s\nAssistant:",
		instructions, currentOrder, strings.Join(lines, "\n"), userText,
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

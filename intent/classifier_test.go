package intent

import (
	"testing"

	"github.com/room4-2/BaristaBot/menu"
	"github.com/room4-2/BaristaBot/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassifier() *Classifier {
	return NewClassifier(menu.Default(), DefaultKeywords())
}

func TestClassify(t *testing.T) {
	c := newClassifier()

	tests := []struct {
		name string
		text string
		want []Intent
	}{
		{"add", "I want a latte with oat milk", []Intent{AddItems}},
		{"menu only", "show menu", []Intent{ShowMenu}},
		{"menu wins over ordering", "I want a latte, show menu please", []Intent{ShowMenu}},
		{"confirm", "confirm", []Intent{PlaceOrder}},
		{"curly apostrophe", "That’s right", []Intent{PlaceOrder}},
		{"reset", "please start over", []Intent{ClearOrder}},
		{"summary", "How much is it?", []Intent{Summarize}},
		{"add and confirm", "order a mocha and confirm", []Intent{AddItems, PlaceOrder}},
		{"nothing", "hello there", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestDetectItems(t *testing.T) {
	c := newClassifier()

	lines := c.DetectItems("I want a latte with oat milk")
	require.Len(t, lines, 1)
	assert.Equal(t, order.Line{Kind: order.KindDrink, Name: "Latte", Modifiers: []string{"Oat Milk"}}, lines[0])
	assert.Equal(t, "Latte with Oat Milk", lines[0].String())
}

func TestDetectItemsDrinkAndPastry(t *testing.T) {
	c := newClassifier()

	lines := c.DetectItems("Can I get a croissant and a mocha with vanilla and an extra shot")
	require.Len(t, lines, 2)
	assert.Equal(t, "Mocha with Extra Shot, Vanilla Syrup", lines[0].String())
	assert.Equal(t, order.KindPastry, lines[1].Kind)
	assert.Equal(t, "Croissant", lines[1].String(), "pastries carry no modifiers")
}

func TestDetectItemsNoModifiers(t *testing.T) {
	c := newClassifier()

	lines := c.DetectItems("an espresso please")
	require.Len(t, lines, 1)
	assert.Nil(t, lines[0].Modifiers)
	assert.Equal(t, "Espresso", lines[0].String())

	assert.Empty(t, c.DetectItems("something sweet"))
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "show_menu", ShowMenu.String())
	assert.Equal(t, "summarize", Summarize.String())
	assert.Equal(t, "unknown", Intent(42).String())
}

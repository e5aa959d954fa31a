package menu

import (
	"testing"

	"github.com/room4-2/BaristaBot/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	m := Default()

	tests := []struct {
		text string
		want string
	}{
		{"Latte", "4.50"},
		{"Latte with Oat Milk", "5.00"},
		{"Latte with Oat Milk, Vanilla Syrup", "5.50"},
		{"unknown item", "0.00"},
		{"Cold Brew with Extra Shot, Decaf", "4.25"},
		{"croissant", "3.50"},
		{"Mocha with Extra Hot, Extra Foam", "5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Price(tt.text).StringFixed(2))
		})
	}
}

func TestPriceLongestMatchWins(t *testing.T) {
	m, err := New(
		drink("Latte", "4.50"),
		drink("Iced Latte", "5.25"),
		modifier("Oat Milk", "0.50"),
	)
	require.NoError(t, err)

	assert.Equal(t, "5.25", m.Price("Iced Latte").StringFixed(2))
	assert.Equal(t, "5.75", m.Price("Iced Latte with Oat Milk").StringFixed(2))
	assert.Equal(t, "4.50", m.Price("Latte").StringFixed(2))
}

func TestLinePrice(t *testing.T) {
	m := Default()

	lines := []order.Line{
		{Kind: order.KindDrink, Name: "Latte"},
		{Kind: order.KindDrink, Name: "Latte", Modifiers: []string{"Oat Milk", "Vanilla Syrup"}},
		{Kind: order.KindDrink, Name: "Frappuccino", Modifiers: []string{"Extra Shot"}},
		{Kind: order.KindPastry, Name: "Danish"},
	}

	for _, l := range lines {
		t.Run(l.String(), func(t *testing.T) {
			assert.True(t, m.LinePrice(l).Equal(m.Price(l.String())))
		})
	}
}

func TestLinePriceUnknownFallsBackToText(t *testing.T) {
	m := Default()

	l := order.Line{Kind: order.KindDrink, Name: "Pumpkin Spice Latte", Modifiers: []string{"Oat Milk"}}
	assert.Equal(t, "5.00", m.LinePrice(l).StringFixed(2))

	l = order.Line{Kind: order.KindDrink, Name: "Tea"}
	assert.True(t, m.LinePrice(l).IsZero())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$4.50", FormatPrice(decimal.RequireFromString("4.5")))
	assert.Equal(t, "$0.00", FormatPrice(decimal.Zero))
	assert.Equal(t, "$12.75", FormatPrice(decimal.RequireFromString("12.75")))
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateDiscountProportional(t *testing.T) {
	items := []LineItem{
		{Title: "a", PriceCents: 1000, Quantity: 2},
		{Title: "b", PriceCents: 500, Quantity: 1},
	}

	// subtotal 2500, charged 2000, discount 500
	out := AllocateDiscount(2500, 2000, items)

	// item discounts 400 and 100, final line totals 1600 and 400
	assert.Equal(t, int64(800), out[0].PriceCents)
	assert.Equal(t, int64(400), out[1].PriceCents)
	assert.Equal(t, int64(2000), out[0].SubtotalCents()+out[1].SubtotalCents())

	// input untouched
	assert.Equal(t, int64(1000), items[0].PriceCents)
}

func TestAllocateDiscountConservation(t *testing.T) {
	tests := []struct {
		name     string
		items    []LineItem
		discount int64
	}{
		{"even split", []LineItem{{PriceCents: 1000, Quantity: 1}, {PriceCents: 1000, Quantity: 1}}, 300},
		{"uneven prices", []LineItem{{PriceCents: 333, Quantity: 3}, {PriceCents: 199, Quantity: 2}, {PriceCents: 1099, Quantity: 1}}, 777},
		{"single item", []LineItem{{PriceCents: 2499, Quantity: 4}}, 1000},
		{"full discount", []LineItem{{PriceCents: 500, Quantity: 2}, {PriceCents: 250, Quantity: 2}}, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var subtotal int64
			for _, li := range tt.items {
				subtotal += li.SubtotalCents()
			}
			out := AllocateDiscount(subtotal, subtotal-tt.discount, tt.items)

			var finalTotal int64
			for _, li := range out {
				finalTotal += li.SubtotalCents()
			}

			// Within one minor unit per item of the charged total.
			tolerance := int64(len(tt.items))
			diff := finalTotal - (subtotal - tt.discount)
			if diff < 0 {
				diff = -diff
			}
			assert.LessOrEqual(t, diff, tolerance,
				"final total %d deviates from charged total %d by more than %d",
				finalTotal, subtotal-tt.discount, tolerance)
		})
	}
}

func TestAllocateDiscountZeroSubtotal(t *testing.T) {
	items := []LineItem{{Title: "free", PriceCents: 0, Quantity: 1}}
	out := AllocateDiscount(0, 0, items)
	assert.Equal(t, int64(0), out[0].PriceCents)
}

func TestAllocateDiscountClamped(t *testing.T) {
	items := []LineItem{{PriceCents: 500, Quantity: 1}}

	// Discount above subtotal is capped; nothing goes negative.
	out := AllocateDiscount(500, -200, items)
	assert.Equal(t, int64(0), out[0].PriceCents)

	// Charged above subtotal means no discount at all.
	out = AllocateDiscount(500, 700, items)
	assert.Equal(t, int64(500), out[0].PriceCents)
}

func TestAllocateDiscountZeroQuantity(t *testing.T) {
	items := []LineItem{
		{PriceCents: 1000, Quantity: 0},
		{PriceCents: 1000, Quantity: 1},
	}
	out := AllocateDiscount(1000, 900, items)
	assert.Equal(t, int64(1000), out[0].PriceCents)
	assert.Equal(t, int64(900), out[1].PriceCents)
}

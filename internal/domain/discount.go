package domain

// AllocateDiscount distributes the difference between a cart subtotal and the
// final charged total across line items, proportionally to each item's share
// of the subtotal. It returns a copy of the items with PriceCents replaced by
// the discounted per-unit price, so that the sum of unit price times quantity
// over all items equals the charged total within one minor unit per item.
//
// A zero subtotal yields no discount. A discount larger than the subtotal is
// capped at the subtotal so no item's final price goes negative; a negative
// discount (total above subtotal) is treated as zero.
func AllocateDiscount(subtotalCents, totalCents int64, items []LineItem) []LineItem {
	discount := subtotalCents - totalCents
	if discount < 0 || subtotalCents <= 0 {
		discount = 0
	}
	if discount > subtotalCents {
		discount = subtotalCents
	}

	out := make([]LineItem, len(items))
	for i, li := range items {
		out[i] = li
		if li.Quantity <= 0 {
			continue
		}
		itemSubtotal := li.SubtotalCents()
		var itemDiscount int64
		if discount > 0 && itemSubtotal > 0 {
			itemDiscount = roundedShare(itemSubtotal, discount, subtotalCents)
			if itemDiscount > itemSubtotal {
				itemDiscount = itemSubtotal
			}
		}
		finalSubtotal := itemSubtotal - itemDiscount
		out[i].PriceCents = roundedDiv(finalSubtotal, li.Quantity)
	}
	return out
}

// roundedShare computes round(part * discount / whole) in integer arithmetic.
func roundedShare(part, discount, whole int64) int64 {
	return (part*discount + whole/2) / whole
}

// roundedDiv computes round(n / d) for non-negative n and positive d.
func roundedDiv(n, d int64) int64 {
	return (n + d/2) / d
}

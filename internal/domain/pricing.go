package domain

import "github.com/shopspring/decimal"

// Subtotal is the item's current product price times its quantity.
// Prices are never snapshotted: an order's value follows the catalog.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Total sums the subtotals of every item in the order.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

package order

import (
	"time"

	"github.com/MikeMC777/pos-facade/internal/coerce"
	"github.com/MikeMC777/pos-facade/internal/money"
)

// Normalize coerces d into the canonical order shape. It never fails:
// missing or unparsable values take their defaults.
func Normalize(d Draft, now time.Time) Order {
	o := Order{
		CustomerID:     DefaultCustomerID,
		OrderDate:      now,
		Items:          make([]Item, 0, len(d.Items)),
		TotalAmount:    money.NonNegative(d.TotalAmount),
		DiscountAmount: money.NonNegative(d.DiscountAmount),
		TaxAmount:      money.NonNegative(d.TaxAmount),
		FinalAmount:    money.NonNegative(d.FinalAmount),
	}
	if id, ok := coerce.Int(d.CustomerID); ok && id > 0 {
		o.CustomerID = id
	}
	if t, ok := coerce.Time(d.OrderDate); ok {
		o.OrderDate = t
	}
	for _, it := range d.Items {
		pid, _ := coerce.Int(it.ProductID)
		o.Items = append(o.Items, Item{
			ProductID: pid,
			Quantity:  coerce.PositiveInt(it.Quantity, 1),
			Price:     money.NonNegative(it.Price),
		})
	}
	return o
}

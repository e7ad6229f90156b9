package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/coerce"
	"github.com/MikeMC777/pos-facade/internal/money"
)

const (
	DefaultCustomerID int64 = 1

	// DateLayout matches what browsers send for Date.toISOString.
	DateLayout = "2006-01-02T15:04:05.000Z"
)

// Input is invoice data from checkout; amounts may be numbers or strings.
type Input struct {
	OrderID       any `json:"orderId"`
	CustomerID    any `json:"customerId"`
	InvoiceDate   any `json:"invoiceDate"`
	Subtotal      any `json:"subtotal"`
	Discount      any `json:"discount"`
	TaxAmount     any `json:"taxAmount"`
	ServiceCharge any `json:"serviceCharge"`
	FinalAmount   any `json:"finalAmount"`
}

// Invoice amounts are decimal.Decimal, which encodes as a JSON string.
type Invoice struct {
	ID            int64           `json:"id,omitempty"`
	OrderID       any             `json:"orderId"`
	CustomerID    int64           `json:"customerId"`
	InvoiceDate   string          `json:"invoiceDate"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	ServiceCharge decimal.Decimal `json:"serviceCharge"`
	FinalAmount   decimal.Decimal `json:"finalAmount"`
}

// Normalize fills defaults and converts every amount to a canonical decimal.
// subtotal and finalAmount are required.
func Normalize(in Input, now time.Time) (Invoice, error) {
	subtotal, err := required("subtotal", in.Subtotal)
	if err != nil {
		return Invoice{}, err
	}
	final, err := required("finalAmount", in.FinalAmount)
	if err != nil {
		return Invoice{}, err
	}
	inv := Invoice{
		OrderID:       coerce.ID(in.OrderID),
		CustomerID:    DefaultCustomerID,
		InvoiceDate:   now.UTC().Format(DateLayout),
		Subtotal:      subtotal,
		Discount:      optional(in.Discount),
		TaxAmount:     optional(in.TaxAmount),
		ServiceCharge: optional(in.ServiceCharge),
		FinalAmount:   final,
	}
	if id, ok := coerce.Int(in.CustomerID); ok && id > 0 {
		inv.CustomerID = id
	}
	if t, ok := coerce.Time(in.InvoiceDate); ok {
		inv.InvoiceDate = t.UTC().Format(DateLayout)
	}
	return inv, nil
}

func required(field string, v any) (decimal.Decimal, error) {
	if !coerce.Present(v) {
		return decimal.Zero, apierr.Validation(field, apierr.ErrMissingField)
	}
	d, ok := money.Parse(v)
	if !ok {
		return decimal.Zero, apierr.Validation(field, apierr.ErrInvalidAmount)
	}
	return d, nil
}

func optional(v any) decimal.Decimal {
	d, ok := money.Parse(v)
	if !ok {
		return decimal.Zero
	}
	return d
}

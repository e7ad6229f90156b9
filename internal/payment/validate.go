package payment

import (
	"strings"
	"time"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/coerce"
	"github.com/MikeMC777/pos-facade/internal/money"
)

// Normalize checks r and returns the body to dispatch. The first failed
// check wins and is returned as a validation error.
func Normalize(r Request, now time.Time) (Submission, error) {
	var out Submission
	required := []struct {
		field string
		v     any
	}{
		{"transactionId", r.TransactionID},
		{"orderId", r.OrderID},
		{"amount", r.Amount},
		{"paymentMethod", r.PaymentMethod},
	}
	for _, f := range required {
		if !coerce.Present(f.v) {
			return out, apierr.Validation(f.field, apierr.ErrMissingField)
		}
	}

	method := Method(strings.ToUpper(strings.TrimSpace(r.PaymentMethod)))
	if method != MethodCard && method != MethodCash {
		return out, apierr.Validation("paymentMethod", apierr.ErrUnsupportedPaymentMethod)
	}

	amount, ok := money.Parse(r.Amount)
	if !ok || amount.IsNegative() {
		return out, apierr.Validation("amount", apierr.ErrInvalidAmount)
	}

	out = Submission{
		TransactionID: coerce.ID(r.TransactionID),
		OrderID:       coerce.ID(r.OrderID),
		Amount:        money.New(amount),
		PaymentMethod: method,
	}

	switch method {
	case MethodCard:
		card, err := checkCard(r.CardDetails, now)
		if err != nil {
			return Submission{}, err
		}
		out.CardDetails = card
	case MethodCash:
		out.CashAmount = r.CashAmount
	}
	return out, nil
}

func checkCard(c *CardDetails, now time.Time) (*CardDetails, error) {
	if c == nil {
		return nil, apierr.Validation("cardDetails", apierr.ErrMissingField)
	}
	if !Luhn(c.CardNumber) {
		return nil, apierr.Validation("cardDetails.cardNumber", apierr.ErrInvalidCardNumber)
	}
	month, year, ok := ParseExpiry(c.ExpiryDate)
	if !ok {
		return nil, apierr.Validation("cardDetails.expiryDate", apierr.ErrInvalidExpiry)
	}
	if Expired(month, year, now) {
		return nil, apierr.Validation("cardDetails.expiryDate", apierr.ErrCardExpired)
	}
	if !ValidCVV(c.code()) {
		return nil, apierr.Validation("cardDetails.cvv", apierr.ErrInvalidCVV)
	}
	card := *c
	card.CardNumber = Digits(c.CardNumber)
	card.ExpiryDate = strings.TrimSpace(c.ExpiryDate)
	card.CVV = strings.TrimSpace(c.code())
	card.CVC = ""
	card.CardholderName = strings.TrimSpace(c.CardholderName)
	return &card, nil
}

package payment

import (
	"github.com/MikeMC777/pos-facade/internal/money"
)

type Method string

const (
	MethodCard Method = "CARD"
	MethodCash Method = "CASH"
)

// Request is a payment as the checkout screen submits it. IDs and amounts
// may be numbers or strings.
type Request struct {
	TransactionID any          `json:"transactionId"`
	OrderID       any          `json:"orderId"`
	Amount        any          `json:"amount"`
	PaymentMethod string       `json:"paymentMethod"`
	CardDetails   *CardDetails `json:"cardDetails,omitempty"`
	CashAmount    any          `json:"cashAmount,omitempty"`
}

// CardDetails carries either CVV or CVC; card networks name it differently.
type CardDetails struct {
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv,omitempty"`
	CVC            string `json:"cvc,omitempty"`
	CardholderName string `json:"cardholderName,omitempty"`
}

func (c CardDetails) code() string {
	if c.CVV != "" {
		return c.CVV
	}
	return c.CVC
}

// Payment is the backend's record of a processed payment.
type Payment struct {
	ID            int64        `json:"id,omitempty"`
	TransactionID any          `json:"transactionId"`
	OrderID       any          `json:"orderId"`
	Amount        money.Amount `json:"amount"`
	PaymentMethod Method       `json:"paymentMethod"`
	Status        string       `json:"status"`
	Timestamp     string       `json:"timestamp,omitempty"`
}

type Status struct {
	TransactionID any    `json:"transactionId"`
	Status        string `json:"status"`
}

type Refund struct {
	TransactionID any    `json:"transactionId"`
	Reason        string `json:"reason,omitempty"`
}

// Submission is the normalized body sent to POST /api/payment.
type Submission struct {
	TransactionID any          `json:"transactionId"`
	OrderID       any          `json:"orderId"`
	Amount        money.Amount `json:"amount"`
	PaymentMethod Method       `json:"paymentMethod"`
	CardDetails   *CardDetails `json:"cardDetails,omitempty"`
	CashAmount    any          `json:"cashAmount,omitempty"`
}

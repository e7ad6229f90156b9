package order

import (
	"time"

	"github.com/MikeMC777/pos-facade/internal/money"
)

// DefaultCustomerID is the walk-in customer used when an order names none.
const DefaultCustomerID int64 = 1

type Item struct {
	ProductID int64        `json:"productId"`
	Quantity  int          `json:"quantity"`
	Price     money.Amount `json:"price"`
}

type Order struct {
	ID             int64        `json:"id,omitempty"`
	CustomerID     int64        `json:"customerId"`
	OrderDate      time.Time    `json:"orderDate"`
	Items          []Item       `json:"items"`
	TotalAmount    money.Amount `json:"totalAmount"`
	DiscountAmount money.Amount `json:"discountAmount"`
	TaxAmount      money.Amount `json:"taxAmount"`
	FinalAmount    money.Amount `json:"finalAmount"`
}

// Draft is order input as the register UI produces it: numbers may arrive
// as strings and any field may be missing.
type Draft struct {
	CustomerID     any         `json:"customerId"`
	OrderDate      any         `json:"orderDate"`
	Items          []DraftItem `json:"items"`
	TotalAmount    any         `json:"totalAmount"`
	DiscountAmount any         `json:"discountAmount"`
	TaxAmount      any         `json:"taxAmount"`
	FinalAmount    any         `json:"finalAmount"`
}

type DraftItem struct {
	ProductID any `json:"productId"`
	Quantity  any `json:"quantity"`
	Price     any `json:"price"`
}

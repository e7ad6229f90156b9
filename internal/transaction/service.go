// Package transaction is the client for the register transaction endpoints.
package transaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/coerce"
	"github.com/MikeMC777/pos-facade/internal/httpx"
	"github.com/MikeMC777/pos-facade/internal/money"
)

// Input is transaction data as the register collects it.
type Input struct {
	OrderID       any    `json:"orderId"`
	TotalAmount   any    `json:"totalAmount"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Status        string `json:"status,omitempty"`
}

type Transaction struct {
	ID            int64        `json:"id,omitempty"`
	OrderID       any          `json:"orderId"`
	TotalAmount   money.Amount `json:"totalAmount"`
	PaymentMethod string       `json:"paymentMethod,omitempty"`
	Status        string       `json:"status,omitempty"`
	CreatedAt     string       `json:"createdAt,omitempty"`
}

type Service struct{ c *httpx.Client }

func NewService(c *httpx.Client) *Service { return &Service{c: c} }

// Create requires orderId and totalAmount; nothing is sent otherwise.
func (s *Service) Create(ctx context.Context, in Input) (*Transaction, error) {
	body, err := normalize(in)
	if err != nil {
		return nil, err
	}
	var out Transaction
	if err := s.c.Post(ctx, "/api/transaction", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Transaction, error) {
	var out Transaction
	if err := s.c.Get(ctx, fmt.Sprintf("/api/transaction/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*Transaction, error) {
	body, err := normalize(in)
	if err != nil {
		return nil, err
	}
	var out Transaction
	if err := s.c.Put(ctx, fmt.Sprintf("/api/transaction/%d", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.c.Delete(ctx, fmt.Sprintf("/api/transaction/%d", id), nil)
}

func normalize(in Input) (Transaction, error) {
	if !coerce.Present(in.OrderID) {
		return Transaction{}, apierr.Validation("orderId", apierr.ErrMissingField)
	}
	if !coerce.Present(in.TotalAmount) {
		return Transaction{}, apierr.Validation("totalAmount", apierr.ErrMissingField)
	}
	total, ok := money.Parse(in.TotalAmount)
	if !ok || total.IsNegative() {
		return Transaction{}, apierr.Validation("totalAmount", apierr.ErrInvalidAmount)
	}
	return Transaction{
		OrderID:       coerce.ID(in.OrderID),
		TotalAmount:   money.New(total),
		PaymentMethod: strings.ToUpper(strings.TrimSpace(in.PaymentMethod)),
		Status:        strings.TrimSpace(in.Status),
	}, nil
}

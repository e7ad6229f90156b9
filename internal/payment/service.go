// Package payment validates and submits payments, and reads back their
// status. Card payments are checked locally before anything is sent.
package payment

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/coerce"
	"github.com/MikeMC777/pos-facade/internal/httpx"
)

type Service struct {
	c   *httpx.Client
	now func() time.Time
}

// NewService returns a payment client. now is used for card expiry checks
// and defaults to time.Now.
func NewService(c *httpx.Client, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{c: c, now: now}
}

// Process validates r and posts it. Validation failures never reach the
// network.
func (s *Service) Process(ctx context.Context, r Request) (*Payment, error) {
	body, err := Normalize(r, s.now())
	if err != nil {
		return nil, err
	}
	var out Payment
	if err := s.c.Post(ctx, "/api/payment", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) GetStatus(ctx context.Context, transactionID string) (*Status, error) {
	id, err := pathID("transactionId", transactionID)
	if err != nil {
		return nil, err
	}
	var out Status
	if err := s.c.Get(ctx, "/api/payment/status/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Payment, error) {
	var out Payment
	if err := s.c.Get(ctx, fmt.Sprintf("/api/payment/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Refund(ctx context.Context, transactionID any, reason string) (*Payment, error) {
	if !coerce.Present(transactionID) {
		return nil, apierr.Validation("transactionId", apierr.ErrMissingField)
	}
	in := Refund{TransactionID: coerce.ID(transactionID), Reason: strings.TrimSpace(reason)}
	var out Payment
	if err := s.c.Post(ctx, "/api/payment/refund", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pathID(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", apierr.Validation(field, apierr.ErrMissingField)
	}
	return url.PathEscape(v), nil
}

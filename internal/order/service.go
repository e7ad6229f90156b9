// Package order is the client for the order endpoints. Orders built by the
// register are normalized before they are sent.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/MikeMC777/pos-facade/internal/httpx"
)

type Service struct {
	c   *httpx.Client
	now func() time.Time
}

// NewService returns an order client. now defaults to time.Now.
func NewService(c *httpx.Client, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{c: c, now: now}
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := s.c.Get(ctx, "/api/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Order, error) {
	var o Order
	if err := s.c.Get(ctx, fmt.Sprintf("/api/order/%d", id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Service) Create(ctx context.Context, d Draft) (*Order, error) {
	var out Order
	if err := s.c.Post(ctx, "/api/order", Normalize(d, s.now()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, id int64, d Draft) (*Order, error) {
	var out Order
	if err := s.c.Put(ctx, fmt.Sprintf("/api/order/%d", id), Normalize(d, s.now()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.c.Delete(ctx, fmt.Sprintf("/api/order/%d", id), nil)
}

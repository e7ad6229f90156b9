// Package invoice creates invoices for completed orders and fetches,
// downloads or emails them.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/coerce"
	"github.com/MikeMC777/pos-facade/internal/httpx"
)

type Service struct {
	c   *httpx.Client
	now func() time.Time
}

func NewService(c *httpx.Client, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{c: c, now: now}
}

func (s *Service) Create(ctx context.Context, in Input) (*Invoice, error) {
	body, err := Normalize(in, s.now())
	if err != nil {
		return nil, err
	}
	var out Invoice
	if err := s.c.Post(ctx, "/invoice", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Invoice, error) {
	var out Invoice
	if err := s.c.Get(ctx, fmt.Sprintf("/invoice/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Download returns the printable invoice document and its content type.
func (s *Service) Download(ctx context.Context, id int64) ([]byte, string, error) {
	return s.c.Raw(ctx, fmt.Sprintf("/invoice/%d/download", id))
}

func (s *Service) Email(ctx context.Context, id int64, address string) error {
	if !coerce.Present(address) {
		return apierr.Validation("email", apierr.ErrMissingField)
	}
	email, ok := coerce.Email(address)
	if !ok {
		return apierr.Validation("email", apierr.ErrInvalidEmail)
	}
	return s.c.Post(ctx, fmt.Sprintf("/invoice/%d/email", id), map[string]string{"email": email}, nil)
}
